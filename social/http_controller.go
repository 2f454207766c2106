package social

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	auth "github.com/zipple/go-auth"
)

// LoginRequest is the body of POST /api/auth/:provider.
type LoginRequest struct {
	Code        string `json:"code"`
	RedirectURI string `json:"redirectUri"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required),
	)
}

// HTTPController exposes the federation flow over HTTP:
//
//	POST   /api/auth/:provider  public, exchanges a code for a token pair
//	PATCH  /api/auth/logout     gated
//	DELETE /api/auth/withdraw   gated
type HTTPController struct {
	authenticator *Authenticator
	logger        auth.Logger
	debug         bool
}

type HTTPControllerOption func(*HTTPController)

func WithControllerLogger(logger auth.Logger) HTTPControllerOption {
	return func(hc *HTTPController) {
		if logger != nil {
			hc.logger = logger
		}
	}
}

// WithDebug enables pretty-printed error dumps in logs.
func WithDebug(debug bool) HTTPControllerOption {
	return func(hc *HTTPController) {
		hc.debug = debug
	}
}

func NewHTTPController(authenticator *Authenticator, opts ...HTTPControllerOption) *HTTPController {
	hc := &HTTPController{
		authenticator: authenticator,
		logger:        auth.DefaultLogger(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(hc)
		}
	}

	return hc
}

// RegisterRoutes mounts the auth routes. The login route must stay on the
// gate's public allowlist; logout and withdraw sit behind it.
func (hc *HTTPController) RegisterRoutes(router fiber.Router) {
	router.Post("/api/auth/:provider", hc.Login)
	router.Patch("/api/auth/logout", hc.Logout)
	router.Delete("/api/auth/withdraw", hc.Withdraw)
}

func (hc *HTTPController) Login(c *fiber.Ctx) error {
	providerName := c.Params("provider")

	payload := LoginRequest{}
	if err := c.BodyParser(&payload); err != nil {
		return hc.renderError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid request body").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return hc.renderError(c, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid request body").
			WithCode(goerrors.CodeBadRequest))
	}

	pair, err := hc.authenticator.Login(c.UserContext(), providerName, LoginParams{
		Code:        payload.Code,
		RedirectURI: payload.RedirectURI,
	})
	if err != nil {
		return hc.renderError(c, err)
	}

	return c.JSON(pair)
}

func (hc *HTTPController) Logout(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c.UserContext())
	if !ok {
		return hc.renderError(c, auth.ErrUnauthenticated)
	}

	if err := hc.authenticator.Logout(c.UserContext(), identity); err != nil {
		return hc.renderError(c, err)
	}

	return c.JSON(fiber.Map{"message": "logout success"})
}

func (hc *HTTPController) Withdraw(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c.UserContext())
	if !ok {
		return hc.renderError(c, auth.ErrUnauthenticated)
	}

	if err := hc.authenticator.Withdraw(c.UserContext(), identity); err != nil {
		return hc.renderError(c, err)
	}

	return c.JSON(fiber.Map{"message": "withdraw success"})
}

// renderError maps rich errors to HTTP responses. Upstream provider
// failures surface as 502 with a generic body; the details stay in logs.
func (hc *HTTPController) renderError(c *fiber.Ctx, err error) error {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich == nil {
		hc.logger.Error("auth http error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal error",
		})
	}

	status := rich.Code
	message := rich.Message

	switch rich.TextCode {
	case TextCodeTokenExchangeFail, TextCodeUserInfoFail:
		status = fiber.StatusBadGateway
		message = "provider login failed"
	}

	if status == 0 {
		status = fiber.StatusInternalServerError
	}

	hc.logger.Error("auth http error (%s): %v", rich.TextCode, err)
	if hc.debug {
		hc.logger.Debug("auth http error detail: %s", print.MaybePrettyJSON(rich.Metadata))
	}

	return c.Status(status).JSON(fiber.Map{
		"error":     message,
		"text_code": rich.TextCode,
	})
}
