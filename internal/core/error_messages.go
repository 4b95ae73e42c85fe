package core

// Error codes reference
//
// Technical errors are mapped to Portuguese messages with a support code.
// Users quote the code; support looks it up here and in the logs.
//
//	DB   Database          duplicate, constraint, connection, timeout, deadlock
//	VAL  Validation        dates, numbers, form input, catalog values
//	FILE Files             size limit, empty upload, encoding, templates
//	IMP  Import            missing columns, busy importer, cancelled import
//	AUTH Authentication    credentials, tokens, permissions
//	AST  Assets            unknown asset, empty selection, reports
//	RATE Rate limiting     too many requests
//	ERR000                 no pattern matched; check the logs
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns come before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"` // What happened
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Database
	{"duplicate key", UserMessage{"Já existe um registro com este identificador", "Verifique se o bem já foi cadastrado", "DB001"}},
	{"unique constraint", UserMessage{"Este valor já está em uso", "Informe um valor diferente", "DB002"}},
	{"violates unique", UserMessage{"Este valor já está em uso", "Informe um valor diferente", "DB002"}},
	{"foreign key", UserMessage{"O registro referenciado não existe", "Atualize a página e tente novamente", "DB003"}},
	{"check constraint", UserMessage{"Valor fora do intervalo permitido", "Revise quantidade e valor de aquisição", "DB004"}},
	{"connection refused", UserMessage{"Não foi possível conectar ao banco de dados", "Tente novamente em alguns instantes", "DB005"}},
	{"connection reset", UserMessage{"A conexão com o banco de dados foi interrompida", "Tente novamente", "DB006"}},
	{"timeout", UserMessage{"A operação excedeu o tempo limite", "Tente novamente mais tarde", "DB007"}},
	{"deadlock", UserMessage{"O banco de dados estava ocupado", "Tente novamente", "DB008"}},

	// Validation
	{"validation failed", UserMessage{"Dados inválidos", "Corrija os campos indicados", "VAL001"}},
	{"invalid date", UserMessage{"Data inválida", "Use o formato dd/mm/aaaa", "VAL002"}},
	{"data inválida", UserMessage{"Data inválida", "Use o formato dd/mm/aaaa", "VAL002"}},
	{"invalid number", UserMessage{"Número inválido", "Use apenas dígitos e vírgula decimal", "VAL003"}},
	{"valor inválido", UserMessage{"Número inválido", "Use apenas dígitos e vírgula decimal", "VAL003"}},
	{"unknown status", UserMessage{"Status não permitido", "Escolha um status da lista", "VAL004"}},
	{"unknown role", UserMessage{"Perfil de acesso desconhecido", "Verifique a configuração de usuários", "VAL005"}},

	// Files
	{"exceeds maximum size", UserMessage{"Arquivo maior que o limite permitido", "Divida o arquivo em partes menores", "FILE001"}},
	{"request body too large", UserMessage{"Arquivo maior que o limite permitido", "Divida o arquivo em partes menores", "FILE001"}},
	{"arquivo vazio", UserMessage{"Arquivo vazio ou sem dados", "Envie um arquivo CSV com cabeçalho e linhas", "FILE002"}},
	{"no file provided", UserMessage{"Nenhum arquivo enviado", "Selecione um arquivo CSV", "FILE003"}},
	{"unknown template", UserMessage{"Modelo não encontrado", "Escolha um dos modelos disponíveis", "FILE004"}},
	{"no data to export", UserMessage{"Nenhum dado para exportar", "Ajuste os filtros e tente novamente", "FILE005"}},
	{"unknown format", UserMessage{"Formato de arquivo não suportado", "Use csv, json ou xlsx", "FILE006"}},

	// Import
	{"colunas obrigatórias", UserMessage{"Colunas obrigatórias não encontradas", "Baixe o modelo de importação e compare os cabeçalhos", "IMP001"}},
	{"too many imports", UserMessage{"Outras importações estão em andamento", "Aguarde um momento e tente novamente", "IMP002"}},
	{"enqueue import", UserMessage{"Não foi possível agendar a importação", "Tente a importação direta ou aguarde", "IMP003"}},
	{"context canceled", UserMessage{"A requisição foi cancelada", "Tente novamente", "IMP004"}},
	{"context deadline exceeded", UserMessage{"A requisição excedeu o tempo limite", "Tente um arquivo menor", "IMP005"}},

	// Authentication
	{"email not allowed", UserMessage{"Email não autorizado para acesso ao sistema", "Solicite acesso ao administrador", "AUTH001"}},
	{"wrong password", UserMessage{"Senha incorreta", "Verifique a senha e tente novamente", "AUTH002"}},
	{"invalid credentials", UserMessage{"Erro ao fazer login", "Verifique email e senha", "AUTH003"}},
	{"invalid or expired token", UserMessage{"Sessão expirada", "Faça login novamente", "AUTH004"}},
	{"session not found", UserMessage{"Sessão expirada", "Faça login novamente", "AUTH004"}},
	{"authorization header", UserMessage{"Autenticação necessária", "Faça login para continuar", "AUTH005"}},
	{"permission required", UserMessage{"Você não tem permissão para esta ação", "Solicite acesso ao administrador", "AUTH006"}},

	// Assets
	{"asset not found", UserMessage{"Bem não encontrado", "Atualize a lista e tente novamente", "AST001"}},
	{"no asset ids", UserMessage{"Nenhum bem selecionado", "Selecione ao menos um bem", "AST002"}},
	{"unknown report", UserMessage{"Relatório não encontrado", "Escolha um dos relatórios disponíveis", "AST003"}},

	// Rate limiting
	{"rate limit", UserMessage{"Muitas requisições", "Aguarde um momento antes de tentar novamente", "RATE001"}},

	// Malformed requests; last so more specific causes win
	{"bad request", UserMessage{"Requisição inválida", "Revise os dados enviados", "VAL006"}},
}

// defaultMessage is returned when no pattern matches (ERR000). Support
// staff should check the logs for the technical error.
var defaultMessage = UserMessage{
	Message: "Ocorreu um erro inesperado",
	Action:  "Tente novamente ou contate o suporte",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// A nil error maps to the zero UserMessage.
//
// Example:
//
//	msg := MapError(ErrAssetNotFound)
//	// msg.Code == "AST001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders "Message (Código: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Código: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError wraps a technical error with its user-facing message. The
// original error stays reachable through Unwrap for logging.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
