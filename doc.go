// Package auth provides JWT minting and validation plus the building blocks
// for federated login: a token codec, a token issuer, request-gating
// middleware under middleware/tokenware, and social provider adapters under
// social/.
//
// Tokens are stateless HS256 JWTs. Logout cannot revoke an already issued
// token; see TokenIssuer for details.
package auth
