package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/crave-catering/cc-order/internal/pkg/jwt"
	"github.com/crave-catering/cc-order/internal/pkg/session"
	"github.com/crave-catering/cc-order/pkg/errors"
	"github.com/crave-catering/cc-order/pkg/response"
	"github.com/crave-catering/cc-order/pkg/status"
)

func bearerToken(r *http.Request) (string, error) {
	authorization := r.Header.Get("Authorization")
	if !strings.HasPrefix(authorization, "Bearer ") {
		return "", errors.New(http.StatusUnauthorized, status.UNAUTHORIZED, "missing bearer token")
	}

	return strings.TrimPrefix(authorization, "Bearer "), nil
}

type CustomerSession struct {
	jsonWebToken *jwt.JSONWebToken
	store        session.Store
}

func NewCustomerSessionMiddleware(jsonWebToken *jwt.JSONWebToken, store session.Store) *CustomerSession {
	return &CustomerSession{
		jsonWebToken: jsonWebToken,
		store:        store,
	}
}

func (m *CustomerSession) Verify(next http.HandlerFunc) http.HandlerFunc {
	return verify(m.jsonWebToken, m.store, session.TypeCustomer, next)
}

// VerifyOptional attaches the customer account when a valid bearer token is
// present, and passes the request through untouched otherwise. Used on
// routes that also accept share-token access.
func (m *CustomerSession) VerifyOptional(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token, err := bearerToken(r)
		if err != nil {
			next(w, r)
			return
		}

		claims, err := m.jsonWebToken.Parse(token)
		if err != nil {
			next(w, r)
			return
		}

		acc, err := m.store.Get(ctx, fmt.Sprintf("%s:%d", claims.AccountType, claims.AccountID))
		if err != nil || acc.Type != session.TypeCustomer {
			next(w, r)
			return
		}

		next(w, r.WithContext(session.SetAccountToCtx(ctx, acc)))
	}
}

type AdminSession struct {
	jsonWebToken *jwt.JSONWebToken
	store        session.Store
}

func NewAdminSessionMiddleware(jsonWebToken *jwt.JSONWebToken, store session.Store) *AdminSession {
	return &AdminSession{
		jsonWebToken: jsonWebToken,
		store:        store,
	}
}

func (m *AdminSession) Verify(next http.HandlerFunc) http.HandlerFunc {
	return verify(m.jsonWebToken, m.store, session.TypeAdmin, next)
}

func verify(jsonWebToken *jwt.JSONWebToken, store session.Store, accountType string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token, err := bearerToken(r)
		if err != nil {
			ae := errors.Destruct(err)
			response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
				Status:  ae.Status,
				Message: ae.Message,
			})
			return
		}

		claims, err := jsonWebToken.Parse(token)
		if err != nil {
			ae := errors.Destruct(err)
			response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
				Status:  ae.Status,
				Message: ae.Message,
			})
			return
		}

		acc, err := store.Get(ctx, fmt.Sprintf("%s:%d", claims.AccountType, claims.AccountID))
		if err != nil {
			ae := errors.Destruct(err)
			response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
				Status:  ae.Status,
				Message: ae.Message,
			})
			return
		}

		if acc.Type != accountType {
			response.JSON(w, http.StatusForbidden, response.RESTEnvelope{
				Status:  status.FORBIDDEN,
				Message: "account is not allowed to access this resource",
			})
			return
		}

		next(w, r.WithContext(session.SetAccountToCtx(ctx, acc)))
	}
}
