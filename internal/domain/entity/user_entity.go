package entity

// Status values stored in the users.status column. The Portuguese literals are
// part of the wire contract with the legacy clients.
const (
	StatusActive   = "Ativo"
	StatusInactive = "Inativo"
)

// User is a registered account. The password is stored and serialized as
// received; legacy clients depend on the recovery mail echoing it back.
// Timestamps are stored as strings in the database datetime format.
type User struct {
	UserID    int64  `json:"userId"`
	Name      string `json:"name"`
	Mail      string `json:"mail"`
	Login     string `json:"login"`
	Password  string `json:"password"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// UserWithSales is one user search row: the user plus the number of sales
// linked to it.
type UserWithSales struct {
	User
	SalesCount int64 `json:"salesCount"`
}
