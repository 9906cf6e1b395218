package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Transaction codes combine a base36 millisecond timestamp with four random
// hex characters. The time component plus randomness makes collisions
// negligible; there is deliberately no uniqueness retry loop.

func RentalCode() string {
	return "RNT-" + codeSuffix()
}

func SaleCode() string {
	return "SAL-" + codeSuffix()
}

func codeSuffix() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	random := strings.ToUpper(uuid.NewString()[:4])
	return ts + "-" + random
}
