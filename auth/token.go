package auth

import (
	"errors"
	"strconv"
	"time"

	"marketplace-messenger/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("auth: missing credential")
	ErrInvalidToken = errors.New("auth: invalid credential")
	ErrExpiredToken = errors.New("auth: expired credential")
)

// Tokens struct to describe tokens object.
type Tokens struct {
	Access  string
	Refresh string
}

// Identity is the result of verifying a connection credential: the stable
// user id plus the seller capability flag carried in the token.
type Identity struct {
	UserID string
	Seller bool
	Exp    int64
}

// GenerateTokens func for generate a new Access & Refresh tokens.
func GenerateTokens(id string, seller bool) (*Tokens, error) {
	accessToken, err := generateToken(
		id,
		seller,
		"JWT_ACCESS_EXPIRE",
		"JWT_ACCESS_KEY",
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := generateToken(
		id,
		seller,
		"JWT_REFRESH_EXPIRE",
		"JWT_REFRESH_KEY",
	)
	if err != nil {
		return nil, err
	}

	return &Tokens{
		Access:  accessToken,
		Refresh: refreshToken,
	}, nil
}

func generateToken(id string, seller bool, expire string, key string) (string, error) {
	minutesCount, _ := strconv.Atoi(config.Config(expire))

	claims := jwt.MapClaims{}

	claims["id"] = id
	claims["seller"] = seller
	claims["exp"] = time.Now().Add(time.Minute * time.Duration(minutesCount)).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	t, err := token.SignedString([]byte(config.Config(key)))
	if err != nil {
		return "", err
	}

	return t, nil
}

// Verify validates a credential against key and extracts the identity.
// It distinguishes a missing credential, a bad signature or malformed token,
// and an expired one; all three are fatal to the presenting connection.
func Verify(token string, key string) (*Identity, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	t, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS512 {
			return nil, ErrInvalidToken
		}
		return []byte(config.Config(key)), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok || !t.Valid {
		return nil, ErrInvalidToken
	}

	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return nil, ErrInvalidToken
	}
	seller, _ := claims["seller"].(bool)
	exp, _ := claims["exp"].(float64)

	return &Identity{
		UserID: id,
		Seller: seller,
		Exp:    int64(exp),
	}, nil
}
