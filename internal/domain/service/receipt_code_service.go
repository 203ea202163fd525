package service

import "github.com/google/uuid"

// ReceiptCodeService defines the interface for fee receipt verification codes.
type ReceiptCodeService interface {
	// GenerateReceiptQR renders a QR code (PNG) encoding the receipt
	// reference, printed on collected-fee receipts for later verification.
	GenerateReceiptQR(receiptID uuid.UUID) ([]byte, error)

	// ParseReceiptQR decodes QR payload data back into a receipt reference.
	ParseReceiptQR(qrData string) (uuid.UUID, error)
}
