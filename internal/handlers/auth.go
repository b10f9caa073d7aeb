package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Senha    string `json:"senha"` // forma alternativa já usada por clientes antigos
}

// Login autentica por email e senha e devolve o usuário e um token assinado.
// A resposta carrega isAdmin e nivelAcesso no objeto do usuário e nas claims,
// que é onde o painel procura os sinais de admin.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErro(w, http.StatusBadRequest, "Requisição inválida")
		return
	}

	senha := req.Password
	if senha == "" {
		senha = req.Senha
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || senha == "" {
		respondErro(w, http.StatusBadRequest, "Email e senha são obrigatórios")
		return
	}

	usuario, err := h.store.GetUsuarioByEmail(email)
	if err != nil || !usuario.Ativo {
		// Não distinguir "não existe" de "senha errada" na resposta.
		respondErro(w, http.StatusUnauthorized, "Credenciais inválidas")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.SenhaHash), []byte(senha)); err != nil {
		respondErro(w, http.StatusUnauthorized, "Credenciais inválidas")
		return
	}

	assinado, err := h.tokens.Generate(usuario.Nome, usuario.Email, usuario.IsAdmin, usuario.NivelAcesso)
	if err != nil {
		log.Printf("❌ Erro ao emitir token para %s: %v", email, err)
		respondErro(w, http.StatusInternalServerError, "Erro ao gerar token")
		return
	}

	log.Printf("✅ Login: %s", email)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"usuario": map[string]interface{}{
			"id":          strconv.FormatInt(usuario.ID, 10),
			"nome":        usuario.Nome,
			"email":       usuario.Email,
			"isAdmin":     usuario.IsAdmin,
			"nivelAcesso": usuario.NivelAcesso,
		},
		"token": assinado,
	})
}
