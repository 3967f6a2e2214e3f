package dto

// TranslateRequest is the body of POST /api/translate
type TranslateRequest struct {
	Q      string `json:"q" binding:"required"`
	Source string `json:"source" binding:"required"`
	Target string `json:"target" binding:"required"`
}

// TranslateResponse mirrors the normalized translation result
type TranslateResponse struct {
	TranslatedText string `json:"translatedText"`
	Provider       string `json:"provider"`
}

// CreateCheckoutSessionRequest is the body of POST /api/create-checkout-session
type CreateCheckoutSessionRequest struct {
	UserID string `json:"userId"`
}

// CreateCheckoutSessionResponse carries the provider session id and the
// hosted payment page URL
type CreateCheckoutSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// RegisterRequest is the body of POST /api/register
type RegisterRequest struct {
	Email string `json:"email" binding:"required"`
}
