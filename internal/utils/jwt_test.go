package utils

import (
	"net/http/httptest"
	"testing"

	"assessment-service/internal/config"

	"github.com/gin-gonic/gin"
)

func setTestSecret(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}
}

func TestGenerateAndValidateJWT(t *testing.T) {
	setTestSecret(t)

	token, err := GenerateJWT("user-42")
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT returned error: %v", err)
	}
	if claims.UserID != "user-42" {
		t.Errorf("Expected user ID user-42, got %s", claims.UserID)
	}
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	setTestSecret(t)

	if _, err := ValidateJWT("not-a-token"); err == nil {
		t.Error("Expected an error for a malformed token")
	}
	if _, err := ValidateJWT(""); err == nil {
		t.Error("Expected an error for an empty token")
	}
}

func TestGetUserIDFromToken(t *testing.T) {
	setTestSecret(t)
	gin.SetMode(gin.TestMode)

	token, err := GenerateJWT("user-42")
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer token", header: "Bearer " + token, want: "user-42"},
		{name: "bare token", header: token, want: "user-42"},
		{name: "no header", header: "", want: ""},
		{name: "garbage token", header: "Bearer junk", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/", nil)
			if tc.header != "" {
				c.Request.Header.Set("Authorization", tc.header)
			}

			got, err := GetUserIDFromToken(c)
			if tc.wantErr {
				if err == nil {
					t.Error("Expected an error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("GetUserIDFromToken returned error: %v", err)
			}
			if got != tc.want {
				t.Errorf("Expected user ID %q, got %q", tc.want, got)
			}
		})
	}
}
