package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/lingopass/backend/internal/domain/errors"
)

// DefaultTolerance is the accepted clock skew between the signature
// timestamp and local time.
const DefaultTolerance = 5 * time.Minute

// VerifySignature checks a Stripe-Signature header against the raw request
// body. The payload must be the byte-exact body as received; any
// re-serialization breaks the check. Header format:
//
//	t={timestamp},v1={signature}[,v1={signature}...]
//
// where signature = hex(HMAC-SHA256(secret, "{timestamp}.{payload}")).
func VerifySignature(payload []byte, header, secret string, tolerance time.Duration) error {
	if secret == "" {
		return domainErrors.ErrWebhookNotConfigured
	}
	if header == "" {
		return fmt.Errorf("missing signature header: %w", domainErrors.ErrSignatureInvalid)
	}
	if tolerance == 0 {
		tolerance = DefaultTolerance
	}

	var timestamp int64 = -1
	var candidates []string
	for _, element := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(element), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("malformed timestamp %q: %w", value, domainErrors.ErrSignatureInvalid)
			}
			timestamp = ts
		case "v1":
			candidates = append(candidates, value)
		}
	}

	if timestamp < 0 {
		return fmt.Errorf("missing timestamp element: %w", domainErrors.ErrSignatureInvalid)
	}
	if len(candidates) == 0 {
		return fmt.Errorf("missing v1 signature element: %w", domainErrors.ErrSignatureInvalid)
	}

	age := time.Since(time.Unix(timestamp, 0))
	if age > tolerance || age < -tolerance {
		return fmt.Errorf("timestamp outside tolerance window: %w", domainErrors.ErrSignatureInvalid)
	}

	expected := ComputeSignature(timestamp, payload, secret)
	for _, candidate := range candidates {
		if hmac.Equal([]byte(expected), []byte(candidate)) {
			return nil
		}
	}

	return fmt.Errorf("no matching v1 signature: %w", domainErrors.ErrSignatureInvalid)
}

// ComputeSignature computes the v1 HMAC-SHA256 signature over
// "{timestamp}.{payload}". Exported for signing test fixtures.
func ComputeSignature(timestamp int64, payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
