package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// Receipt is the verified content of a signed run result.
type Receipt struct {
	RunID     string    `json:"run_id"`
	UserID    string    `json:"user_id"`
	Score     int       `json:"score"`
	Life      int       `json:"life"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ReceiptService signs finished runs so clients can share a tamper-evident result.
type ReceiptService struct {
	secret string
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

var ErrInvalidReceipt = errors.New("invalid receipt")

// NewReceiptService builds a signer. ttl <= 0 falls back to one week.
func NewReceiptService(secret, issuer string, ttl time.Duration) *ReceiptService {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &ReceiptService{secret: secret, issuer: issuer, ttl: ttl, now: time.Now}
}

// Issue signs the final state of a finished run.
func (s *ReceiptService) Issue(run *Run) (string, error) {
	if s == nil {
		return "", fmt.Errorf("receipt service is nil")
	}
	if s.secret == "" || s.issuer == "" {
		return "", fmt.Errorf("receipt config is incomplete")
	}
	if !run.Ended() {
		return "", fmt.Errorf("run has not ended")
	}

	now := s.now()
	claims := jwt.MapClaims{
		"iss":   s.issuer,
		"sub":   run.UserID,
		"jti":   run.ID.String(),
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
		"score": run.Game.Score,
		"life":  run.Game.Life,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// Verify checks the signature, issuer and expiry of a receipt token.
func (s *ReceiptService) Verify(tokenString string) (Receipt, error) {
	if s == nil || s.secret == "" {
		return Receipt{}, fmt.Errorf("receipt config is incomplete")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: %v", ErrInvalidReceipt, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Receipt{}, ErrInvalidReceipt
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return Receipt{}, fmt.Errorf("%w: unexpected issuer", ErrInvalidReceipt)
	}

	receipt := Receipt{
		RunID:     stringClaim(claims, "jti"),
		UserID:    stringClaim(claims, "sub"),
		Score:     int(numberClaim(claims, "score")),
		Life:      int(numberClaim(claims, "life")),
		IssuedAt:  time.Unix(int64(numberClaim(claims, "iat")), 0).UTC(),
		ExpiresAt: time.Unix(int64(numberClaim(claims, "exp")), 0).UTC(),
	}
	return receipt, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}

// numberClaim reads a numeric claim; JSON decoding yields float64.
func numberClaim(claims jwt.MapClaims, key string) float64 {
	v, _ := claims[key].(float64)
	return v
}
