package domain

import "time"

type Notification struct {
	ID            int64             `json:"id"`
	RecipientID   int64             `json:"recipient_id"`
	RecipientType WalletType        `json:"recipient_type"`
	Title         string            `json:"title"`
	Message       string            `json:"message"`
	Attributes    map[string]string `json:"attributes,omitempty"`
	Read          bool              `json:"read"`
	CreatedOn     time.Time         `json:"created_on"`
}
