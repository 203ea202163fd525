// Package qrcode implements the fee-receipt verification code service.
package qrcode

import (
	"encoding/json"
	"fmt"

	"commune/internal/domain/service"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

type receiptCodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// receiptCodeData is the payload encoded in a receipt QR code.
type receiptCodeData struct {
	ReceiptID string `json:"receipt_id"`
	Type      string `json:"type"`
}

const receiptCodeType = "fee_receipt"

// NewReceiptCodeService creates a new receipt code service instance
func NewReceiptCodeService(size int, errorCorrectionLevel string) service.ReceiptCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &receiptCodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateReceiptQR renders a QR code (PNG) encoding the receipt reference.
func (s *receiptCodeService) GenerateReceiptQR(receiptID uuid.UUID) ([]byte, error) {
	data := receiptCodeData{
		ReceiptID: receiptID.String(),
		Type:      receiptCodeType,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseReceiptQR decodes QR payload data back into a receipt reference.
func (s *receiptCodeService) ParseReceiptQR(qrData string) (uuid.UUID, error) {
	var data receiptCodeData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return uuid.Nil, fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	if data.Type != receiptCodeType {
		return uuid.Nil, fmt.Errorf("invalid QR code type: %s", data.Type)
	}

	receiptID, err := uuid.Parse(data.ReceiptID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse receipt ID: %w", err)
	}

	return receiptID, nil
}
