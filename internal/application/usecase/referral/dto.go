package referral

import "github.com/origa008/zerodriveless-sub001/internal/domain/entity"

type CreateInput struct {
	ReferrerCode string `json:"referrerCode"`
	ReferredID   string `json:"referredId"`
}

// CreateOutput.Created is false when the referred user already had a referral; Referral
// then holds the existing record when it could be read.
type CreateOutput struct {
	Created  bool             `json:"created"`
	Referral *entity.Referral `json:"referral,omitempty"`
}
