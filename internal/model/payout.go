package model

type PayoutRecord struct {
	ID          string  `json:"id"`
	Rate        float64 `json:"rate"`
	Articles    int     `json:"articles"`
	TotalPayout string  `json:"totalPayout"`
	Date        string  `json:"date"`
}

// PayoutState is the calculator's current inputs and derived total.
type PayoutState struct {
	Rate     float64
	Articles int
	Total    float64
}
