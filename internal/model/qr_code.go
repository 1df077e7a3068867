package model

// QRCode is one printable table entry. QRURL is the deep link the printed
// code resolves to (#/menu/{tableNumber}); scanning it binds the customer
// session to that table.
type QRCode struct {
	ID          string `json:"id"`
	TableName   string `json:"tableName"`
	TableNumber int    `json:"tableNumber"`
	QRURL       string `json:"qrUrl"`
	CreatedDate string `json:"createdDate"` // YYYY-MM-DD
}
