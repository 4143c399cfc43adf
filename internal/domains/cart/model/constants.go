package model

// Cart business constraints
const (
	// GlobalMax is the safety ceiling for a single line's quantity,
	// applied on top of the product's stock
	GlobalMax = 999
)

// Storage keys
const (
	// CartKeyFormat format: "cart:user:{userID}"
	CartKeyFormat = "cart:user:%d"
)
