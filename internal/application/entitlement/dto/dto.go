package dto

// TokensDTO is the balance as reported by GET /usage. Max is -1 when unlimited.
type TokensDTO struct {
	Current   int  `json:"current"`
	Max       int  `json:"max"`
	Unlimited bool `json:"unlimited"`
}

type UsageDTO struct {
	Tokens         TokensDTO `json:"tokens"`
	Plan           string    `json:"plan"`
	CanMakeRequest bool      `json:"canMakeRequest"`
}

type RemainingTokensDTO struct {
	Current   int  `json:"current"`
	Unlimited bool `json:"unlimited"`
}

type ConsumeTokenDTO struct {
	Success bool               `json:"success"`
	Tokens  RemainingTokensDTO `json:"tokens"`
	Message string             `json:"message"`
}

// SubscriptionDTO is the public view of an entitlement. Dates are YYYY-MM-DD
// in the business timezone.
type SubscriptionDTO struct {
	Plan          string  `json:"plan"`
	Status        string  `json:"status"`
	Tokens        int     `json:"tokens"`
	PaymentStatus string  `json:"payment_status"`
	StartDate     *string `json:"start_date"`
	EndDate       *string `json:"end_date"`
	IsActive      bool    `json:"is_active"`
	AmountPaid    int64   `json:"amount_paid"`
}

type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type UserStatusDTO struct {
	Authenticated       bool            `json:"authenticated"`
	User                UserDTO         `json:"user"`
	Subscription        SubscriptionDTO `json:"subscription"`
	CreatedSubscription bool            `json:"created_subscription,omitempty"`
}
