// Package adminaccess decide se um usuário deve ser tratado como
// administrador a partir de registros de formato livre (objeto do usuário e
// claims de token). O backend mudou de formato várias vezes ao longo do tempo
// (role, perfil, papel, cargo...), então a verificação é deliberadamente
// permissiva: falso positivo é aceitável, exceção nunca.
package adminaccess

import (
	"encoding/base64"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Profundidade máxima da varredura recursiva por sinais de admin.
const maxDepth = 3

// Chaves cujo valor merece inspeção na varredura (inglês e português).
var adminKeyPattern = regexp.MustCompile(`(admin|adm|geren|manager|super|root|owner|acess|nivel|role|perfil|permiss|tipo|papel|grupo|cargo|func|cat)`)

// ToStr converte qualquer valor para string minúscula. nil vira "".
func ToStr(v interface{}) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return strings.ToLower(val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case json.Number:
		return strings.ToLower(val.String())
	default:
		return ""
	}
}

// Truthy aplica a regra de coerção usada para sinais de admin: true, "true",
// 1, "1" ou "sim" (sem distinção de maiúsculas) contam como verdadeiro.
func Truthy(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		if val == "true" || val == "1" {
			return true
		}
	case float64:
		if val == 1 {
			return true
		}
	case int:
		if val == 1 {
			return true
		}
	}
	return ToStr(v) == "sim"
}

// palavraAdmin verifica se a string carrega uma palavra com cara de admin.
func palavraAdmin(s string) bool {
	x := strings.ToLower(s)
	return x == "admin" || x == "administrator" || x == "administrador" || x == "adm" ||
		strings.Contains(x, "admin") || strings.Contains(x, "adm") || strings.Contains(x, "geren") ||
		strings.Contains(x, "manager") || strings.Contains(x, "super") || strings.Contains(x, "root") ||
		strings.Contains(x, "owner")
}

// HasAdminSignal faz a varredura estrutural por sinais de admin, limitada a
// profundidade 3. Números >= 1 e booleanos true contam como sinal positivo;
// arrays são percorridos elemento a elemento; em objetos, só chaves que casam
// com adminKeyPattern são inspecionadas.
func HasAdminSignal(obj interface{}) bool {
	return hasAdminSignal(obj, 0)
}

func hasAdminSignal(obj interface{}, depth int) bool {
	if obj == nil || depth > maxDepth {
		return false
	}

	switch val := obj.(type) {
	case string:
		return palavraAdmin(val)
	case float64:
		return val >= 1
	case int:
		return val >= 1
	case bool:
		return val
	case []interface{}:
		for _, v := range val {
			if hasAdminSignal(v, depth+1) {
				return true
			}
		}
	case map[string]interface{}:
		for k, v := range val {
			if !adminKeyPattern.MatchString(strings.ToLower(k)) {
				continue
			}
			if Truthy(v) || palavraAdmin(ToStr(v)) {
				return true
			}
			if hasAdminSignal(v, depth+1) {
				return true
			}
		}
	}

	return false
}

// IsAdminUser decide se o objeto do usuário representa um administrador.
// Nunca falha por campo ausente, renomeado ou com tipo errado.
func IsAdminUser(user interface{}) bool {
	obj, ok := user.(map[string]interface{})
	if !ok || obj == nil {
		return false
	}

	// Campos diretos
	for _, campo := range []string{"isAdmin", "admin", "is_admin", "isAdm", "adm", "superuser"} {
		if Truthy(obj[campo]) {
			return true
		}
	}

	return HasAdminSignal(obj)
}

// DecodeTokenClaims decodifica o payload (segundo segmento) de um token de
// três partes separadas por ponto. A assinatura NÃO é verificada aqui: o
// resultado serve só como dica de autorização na UI, e o servidor revalida o
// token em toda chamada que altera estado. Qualquer falha de decodificação
// devolve nil, nunca erro.
func DecodeTokenClaims(token string) map[string]interface{} {
	if token == "" {
		return nil
	}

	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return nil
	}

	payload := strings.ReplaceAll(parts[1], "-", "+")
	payload = strings.ReplaceAll(payload, "_", "/")
	if m := len(payload) % 4; m != 0 {
		payload += strings.Repeat("=", 4-m)
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil
	}

	var claims map[string]interface{}
	if err := json.Unmarshal(decoded, &claims); err != nil {
		return nil
	}

	return claims
}

// presente replica a escolha "primeiro valor não vazio" feita sobre as claims.
func presente(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case float64:
		return val != 0
	case int:
		return val != 0
	}
	return true
}

// toNumber tenta interpretar o valor como número; falha vira ok=false e a
// comparação de nível simplesmente não passa.
func toNumber(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// IsClaimsAdmin verifica se as claims decodificadas indicam privilégio de
// administrador: campos diretos, depois sinônimos de role, depois arrays de
// roles/permissões/scopes, por fim nível numérico de acesso (>= 7).
func IsClaimsAdmin(claims map[string]interface{}) bool {
	if claims == nil {
		return false
	}

	for _, campo := range []string{"isAdmin", "admin", "is_admin"} {
		if Truthy(claims[campo]) {
			return true
		}
	}

	var role string
	for _, campo := range []string{"role", "perfil", "permissao", "tipo", "tipoUsuario", "tipo_usuario", "papel", "grupo"} {
		if v, ok := claims[campo]; ok && presente(v) {
			role = ToStr(v)
			break
		}
	}

	if role == "admin" || role == "administrator" ||
		strings.Contains(role, "adm") || strings.Contains(role, "geren") ||
		strings.Contains(role, "super") || strings.Contains(role, "root") {
		return true
	}

	var arr interface{}
	for _, campo := range []string{"roles", "permissoes", "scopes"} {
		if v, ok := claims[campo]; ok && v != nil {
			arr = v
			break
		}
	}

	if lista, ok := arr.([]interface{}); ok {
		for _, item := range lista {
			texto := ""
			if s, ok := item.(string); ok {
				texto = ToStr(s)
			} else if m, ok := item.(map[string]interface{}); ok {
				if presente(m["name"]) {
					texto = ToStr(m["name"])
				} else {
					texto = ToStr(m["role"])
				}
			}
			if strings.Contains(texto, "adm") {
				return true
			}
		}
	}

	var nivelRaw interface{}
	for _, campo := range []string{"nivel", "nivelAcesso", "nivel_acesso", "accessLevel"} {
		if v, ok := claims[campo]; ok && presente(v) {
			nivelRaw = v
			break
		}
	}

	if nivelRaw != nil {
		if nivel, ok := toNumber(nivelRaw); ok && nivel >= 7 {
			return true
		}
	}

	return false
}

// ValidateAdminAccess é a porta de entrada unificada: primeiro o objeto do
// usuário, depois (se houver token) as claims decodificadas. Token malformado
// equivale a "sem claims".
func ValidateAdminAccess(user interface{}, token string) bool {
	if IsAdminUser(user) {
		return true
	}

	if token != "" {
		if claims := DecodeTokenClaims(token); claims != nil && IsClaimsAdmin(claims) {
			return true
		}
	}

	return false
}
