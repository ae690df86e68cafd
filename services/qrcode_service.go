package services

import (
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"
)

// TableQRCode renders the PNG printed on a dine-in table: it encodes the
// ordering PWA URL for this restaurant and table.
func TableQRCode(baseURL string, restaurantID uint, tableLabel string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	target := fmt.Sprintf("%s/r/%d?table=%s", baseURL, restaurantID, url.QueryEscape(tableLabel))
	return qrcode.Encode(target, qrcode.Medium, size)
}
