package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

// QRGenerator renders check-in codes for reservations.
type QRGenerator interface {
	Generate(reservationID uuid.UUID) ([]byte, error)
}

// DefaultQRGenerator encodes a check-in link under BaseURL as a 256px PNG.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(reservationID uuid.UUID) ([]byte, error) {
	data := fmt.Sprintf("%s/reservations/%s/check-in", strings.TrimRight(g.BaseURL, "/"), reservationID)
	return qrcode.Encode(data, qrcode.Medium, 256)
}
