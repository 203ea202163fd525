package qrcode

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReceiptCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewReceiptCodeService(tt.size, tt.errorCorrectionLevel)
			assert.NotNil(t, service)
		})
	}
}

func TestReceiptCodeService_GenerateReceiptQR(t *testing.T) {
	service := NewReceiptCodeService(256, "M")
	receiptID := uuid.New()

	qrBytes, err := service.GenerateReceiptQR(receiptID)
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// Verify it's a valid PNG (starts with PNG magic number)
	assert.Equal(t, byte(0x89), qrBytes[0])
	assert.Equal(t, byte(0x50), qrBytes[1])
	assert.Equal(t, byte(0x4E), qrBytes[2])
	assert.Equal(t, byte(0x47), qrBytes[3])
}

func TestReceiptCodeService_ParseReceiptQR(t *testing.T) {
	service := NewReceiptCodeService(256, "M")
	receiptID := uuid.New()

	data := receiptCodeData{
		ReceiptID: receiptID.String(),
		Type:      receiptCodeType,
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	parsedID, err := service.ParseReceiptQR(string(jsonData))
	require.NoError(t, err)
	assert.Equal(t, receiptID, parsedID)
}

func TestReceiptCodeService_ParseReceiptQR_InvalidJSON(t *testing.T) {
	service := NewReceiptCodeService(256, "M")

	_, err := service.ParseReceiptQR("invalid json")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal QR code data")
}

func TestReceiptCodeService_ParseReceiptQR_InvalidType(t *testing.T) {
	service := NewReceiptCodeService(256, "M")

	data := receiptCodeData{
		ReceiptID: uuid.New().String(),
		Type:      "subscription",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	_, err = service.ParseReceiptQR(string(jsonData))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid QR code type")
}

func TestReceiptCodeService_ParseReceiptQR_InvalidUUID(t *testing.T) {
	service := NewReceiptCodeService(256, "M")

	data := receiptCodeData{
		ReceiptID: "not-a-valid-uuid",
		Type:      receiptCodeType,
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	_, err = service.ParseReceiptQR(string(jsonData))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse receipt ID")
}
