package kakao

import (
	"strconv"

	"github.com/zipple/go-auth/social"
)

type kakaoUserInfo struct {
	ID           int64        `json:"id"`
	KakaoAccount kakaoAccount `json:"kakao_account"`
}

type kakaoAccount struct {
	Email    string       `json:"email"`
	Gender   string       `json:"gender"`
	AgeRange string       `json:"age_range"`
	Birthday string       `json:"birthday"`
	Profile  kakaoProfile `json:"profile"`
}

type kakaoProfile struct {
	Nickname          string `json:"nickname"`
	ProfileImageURL   string `json:"profile_image_url"`
	ThumbnailImageURL string `json:"thumbnail_image_url"`
}

func mapProfile(info *kakaoUserInfo) *social.Profile {
	if info == nil {
		return nil
	}

	return &social.Profile{
		Provider:       "kakao",
		ProviderUserID: strconv.FormatInt(info.ID, 10),
		Email:          info.KakaoAccount.Email,
		Nickname:       info.KakaoAccount.Profile.Nickname,
		AvatarURL:      info.KakaoAccount.Profile.ProfileImageURL,
		Raw: map[string]any{
			"id":        info.ID,
			"email":     info.KakaoAccount.Email,
			"nickname":  info.KakaoAccount.Profile.Nickname,
			"gender":    info.KakaoAccount.Gender,
			"age_range": info.KakaoAccount.AgeRange,
			"birthday":  info.KakaoAccount.Birthday,
		},
	}
}
