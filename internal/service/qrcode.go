package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/aqro/aqro/internal/constants"
)

const qrCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewQRCodeValue builds a container QR code value:
// AQRO-<random base36 block>-<millisecond suffix>.
// The random block comes from crypto/rand; the suffix adds ordering and
// keeps collisions across a burst of generations unlikely. The database
// unique index is still the authority, callers retry on conflict.
func NewQRCodeValue() (string, error) {
	block := make([]byte, constants.QRCodeRandomLength)
	max := big.NewInt(int64(len(qrCodeAlphabet)))
	for i := range block {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("qr code random: %w", err)
		}
		block[i] = qrCodeAlphabet[n.Int64()]
	}
	millis := time.Now().UnixMilli() % 1_000_000
	return fmt.Sprintf("%s-%s-%0*d", constants.QRCodePrefix, string(block), constants.QRCodeTimeLength, millis), nil
}
