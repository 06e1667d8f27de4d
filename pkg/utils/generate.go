package utils

import (
	crand "crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== REFERENCE CODE ====================

// GenerateReferenceCode creates the human-readable booking reference
// shown to the user, distinct from the internal booking ID.
// Codes must be unique across all bookings ever created, so the random
// part carries 32 bits rather than a handful of digits.
func GenerateReferenceCode() string {
	buf := make([]byte, 4)
	if _, err := crand.Read(buf); err != nil {
		// crypto/rand does not fail on supported platforms; fall back
		// to the UUID source rather than panic.
		u := uuid.New()
		copy(buf, u[:])
	}

	// Format: PB-YYYYMMDD-RANDOM
	datePart := time.Now().Format("20060102")
	randomPart := strings.ToUpper(hex.EncodeToString(buf))

	return fmt.Sprintf("PB-%s-%s", datePart, randomPart)
}
