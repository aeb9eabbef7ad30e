package utils

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const referralAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func NewID() string {
	return uuid.New().String()
}

// GenerateReferralCode sorteia um código maiúsculo alfanumérico; a unicidade é garantida pelo banco
func GenerateReferralCode(length int) (string, error) {
	return gonanoid.Generate(referralAlphabet, length)
}
