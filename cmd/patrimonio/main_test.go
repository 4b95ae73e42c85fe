package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

const sampleCSV = "Descrição,Categoria,Valor de Aquisição,Status\n" +
	"Cadeira de escritório,Mobiliário,\"150,00\",Ativo\n" +
	",Mobiliário,\"10,00\",Ativo\n" +
	"Monitor 24 polegadas,Informática,\"899,90\",Ativo\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// run executes the root command and returns stdout and the exit code the
// command would terminate with.
func run(t *testing.T, stdin string, args ...string) (string, int) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return out.String(), 0
	}
	var ee *exitErr
	if errors.As(err, &ee) {
		return out.String(), ee.code
	}
	t.Logf("non-exit error: %v", err)
	return out.String(), 1
}

func TestValidateImport(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode int
		wantOut  []string
	}{
		{
			name:     "rejected row",
			content:  sampleCSV,
			wantCode: exitInvalidRows,
			wantOut:  []string{"3 linhas: 2 válidas, 1 com erro", "linha 3: Descrição é obrigatória"},
		},
		{
			name:     "all valid",
			content:  "Descrição,Categoria\nMesa,Mobiliário\n",
			wantCode: 0,
			wantOut:  []string{"1 linhas: 1 válidas, 0 com erro"},
		},
		{
			name:     "missing column",
			content:  "Descrição,Local\nMesa,Sala 1\n",
			wantCode: exitBadInput,
		},
		{
			name:     "header only",
			content:  "Descrição,Categoria\n",
			wantCode: exitBadInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bens.csv", tt.content)
			out, code := run(t, "", "validate-import", path)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (output %q)", code, tt.wantCode, out)
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(out, want) {
					t.Errorf("output %q does not contain %q", out, want)
				}
			}
		})
	}
}

func TestValidateImport_MissingFile(t *testing.T) {
	_, code := run(t, "", "validate-import", filepath.Join(t.TempDir(), "nope.csv"))
	if code != exitBadInput {
		t.Errorf("exit code = %d, want %d", code, exitBadInput)
	}
}

func TestConvert_JSON(t *testing.T) {
	path := writeFile(t, "bens.csv", sampleCSV)
	out, code := run(t, "", "convert", path, "--to", "json", "-o", "-")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}

	var env struct {
		Metadata struct {
			RecordCount int `json:"recordCount"`
		} `json:"metadata"`
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &env); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if env.Metadata.RecordCount != 2 || len(env.Data) != 2 {
		t.Fatalf("recordCount = %d, data rows = %d, want 2", env.Metadata.RecordCount, len(env.Data))
	}
	if got := env.Data[1]["descricao"]; got != "Monitor 24 polegadas" {
		t.Errorf("descricao = %v", got)
	}
}

func TestConvert_XLSXToFile(t *testing.T) {
	path := writeFile(t, "bens.csv", sampleCSV)
	dest := filepath.Join(t.TempDir(), "bens.xlsx")
	if _, code := run(t, "", "convert", path, "--to", "xlsx", "--out", dest); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	// XLSX files are zip archives.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Errorf("output does not look like an xlsx file: % x", data[:min(4, len(data))])
	}
}

func TestConvert_UnknownFormat(t *testing.T) {
	path := writeFile(t, "bens.csv", sampleCSV)
	if _, code := run(t, "", "convert", path, "--to", "pdf"); code != exitBadInput {
		t.Errorf("exit code = %d, want %d", code, exitBadInput)
	}
}

func TestTemplate(t *testing.T) {
	out, code := run(t, "", "template", "assets-basic", "-o", "-")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	want := "\uFEFFCódigo,Descrição,Categoria,Status"
	if out != want {
		t.Errorf("template = %q, want %q", out, want)
	}

	if _, code := run(t, "", "template", "inventario"); code != exitBadInput {
		t.Errorf("unknown template exit code = %d, want %d", code, exitBadInput)
	}
}

func TestHashPassword(t *testing.T) {
	out, code := run(t, "s3nha-forte\n", "hash-password")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	hash := strings.TrimSpace(out)
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3nha-forte")); err != nil {
		t.Errorf("hash does not match password: %v", err)
	}

	out, code = run(t, "s3nha-forte", "hash-password", "--email", " Admin@Clinica.com ", "--role", "admin")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	parts := strings.Split(strings.TrimSpace(out), "|")
	if len(parts) != 3 || parts[0] != "admin@clinica.com" || parts[1] != "admin" {
		t.Errorf("entry = %q, want admin@clinica.com|admin|<hash>", out)
	}

	if _, code := run(t, "", "hash-password"); code != exitBadInput {
		t.Errorf("empty password exit code = %d, want %d", code, exitBadInput)
	}
	if _, code := run(t, "x\n", "hash-password", "--email", "a@b.c", "--role", "root"); code != exitBadInput {
		t.Errorf("bad role exit code = %d, want %d", code, exitBadInput)
	}
}

func TestConvert_CSVValidatesAgain(t *testing.T) {
	path := writeFile(t, "bens.csv", sampleCSV)
	dest := filepath.Join(t.TempDir(), "convertido.csv")
	if _, code := run(t, "", "convert", path, "--to", "csv", "--out", dest); code != 0 {
		t.Fatalf("convert exit code = %d", code)
	}

	out, code := run(t, "", "validate-import", dest)
	if code != 0 {
		t.Fatalf("validate-import exit code = %d, output %q", code, out)
	}
	if !strings.Contains(out, "2 linhas: 2 válidas, 0 com erro") {
		t.Errorf("output = %q", out)
	}
}
