package reddit

import "excer/internal/domain/stocks"

// Reddit wraps every payload in a kind/data envelope. Post and comment
// field names line up with the domain types' JSON tags, so children decode
// straight into them.

type listingEnvelope struct {
	Data struct {
		Children []struct {
			Kind string      `json:"kind"`
			Data stocks.Post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type commentEnvelope struct {
	Data struct {
		Children []struct {
			Kind string         `json:"kind"`
			Data stocks.Comment `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type oauthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
