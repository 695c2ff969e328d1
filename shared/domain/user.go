package domain

type User struct {
	Id UserId `json:"user_id" db:"id"`
	// nil for anonymized accounts
	Username *string `json:"username" db:"username"`
	Nickname string  `json:"nickname" db:"nickname"`
	Avatar   string  `json:"avatar" db:"avatar"`
}
