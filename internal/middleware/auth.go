package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"lopes-agenda/pkg/adminaccess"
	"lopes-agenda/pkg/token"
)

// AuthMiddleware protege as rotas que alteram a agenda. A assinatura do token
// é verificada aqui, no servidor — o painel só decodifica claims como dica de
// UI, então o controle de acesso de verdade é este.
type AuthMiddleware struct {
	tokens *token.Manager
}

// NewAuthMiddleware cria nova instância do middleware
func NewAuthMiddleware(tokens *token.Manager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAdmin exige um Bearer token válido cujas claims indiquem
// privilégio de administrador.
func (am *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			escreverErro(w, http.StatusUnauthorized, "Token de acesso não fornecido")
			return
		}

		claims, err := am.tokens.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			log.Printf("🚫 Token rejeitado: %v", err)
			escreverErro(w, http.StatusUnauthorized, "Token inválido ou expirado")
			return
		}

		if !adminaccess.IsClaimsAdmin(claims) {
			log.Printf("🚫 Acesso negado: %v não é administrador", claims["email"])
			escreverErro(w, http.StatusForbidden, "Apenas administradores podem acessar este recurso")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func escreverErro(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
