// Command patrimonio is the offline companion of the inventory server: it
// checks import files, converts them, writes import templates and hashes
// passwords for the AUTH_USERS allow-list.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/application"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/auth"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/config"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/tabular"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// Exit codes.
const (
	exitInvalidRows = 2 // file parsed but some rows were rejected
	exitBadInput    = 3 // unreadable file, missing columns, bad flags
	exitInternal    = 4
)

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "patrimonio",
		Short:         "Tools for the clinic asset inventory",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newValidateCmd(),
		newConvertCmd(),
		newTemplateCmd(),
		newHashPasswordCmd(),
	)
	return root
}

// settings loads the import and export sections from the environment. The
// CLI never touches the database, so whole-config validation is skipped.
func settings() (config.ImportConfig, config.ExportConfig, error) {
	var imp config.ImportConfig
	var exp config.ExportConfig
	if err := config.Populate(&imp); err != nil {
		return imp, exp, err
	}
	if err := config.Populate(&exp); err != nil {
		return imp, exp, err
	}
	return imp, exp, nil
}

// parseFile runs the asset importer over path.
func parseFile(path string) (*tabular.ImportResult, config.ExportConfig, error) {
	imp, exp, err := settings()
	if err != nil {
		return nil, exp, codeError(exitBadInput, "%s", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, exp, codeError(exitBadInput, "open %s: %s", path, err)
	}
	defer f.Close()

	res, err := application.NewImporter(imp, exp).Import(f)
	if err != nil {
		var ie *tabular.ImportError
		if errors.As(err, &ie) {
			return nil, exp, codeError(exitBadInput, "%s: %s", filepath.Base(path), ie.Message)
		}
		return nil, exp, codeError(exitBadInput, "%s: %s", filepath.Base(path), err)
	}
	return res, exp, nil
}

func newValidateCmd() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "validate-import <file>",
		Short: "Check an asset import file and list rejected rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, err := parseFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d linhas: %d válidas, %d com erro\n",
				res.TotalRows, res.ValidRowCount, res.InvalidRowCount)
			if !quiet {
				for _, re := range res.Errors {
					fmt.Fprintf(out, "  linha %d: %s\n", re.RowNumber, strings.Join(re.Messages, "; "))
				}
			}
			if res.InvalidRowCount > 0 {
				return codeError(exitInvalidRows, "%d row(s) rejected", res.InvalidRowCount)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only the summary line")
	return cmd
}

func newConvertCmd() *cobra.Command {
	var to, out string
	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Import a CSV file and export its valid rows as JSON or XLSX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, exp, err := parseFile(args[0])
			if err != nil {
				return err
			}

			base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			exporter := application.NewExporter(exp)
			var file tabular.Result
			switch strings.ToLower(to) {
			case "json":
				file = exporter.JSON(res.Rows, base, tabular.JSONOptions{})
			case "xlsx":
				file = exporter.Spreadsheet(res.Rows, tabular.AssetHeaders(), base, nil)
			case "csv":
				file = exporter.CSV(res.Rows, tabular.AssetHeaders(), base)
			default:
				return codeError(exitBadInput, "unknown format %q (want json, xlsx or csv)", to)
			}
			if !file.Success {
				return codeError(exitBadInput, "convert: %s", file.Err)
			}

			dest := out
			if dest == "" {
				dest = file.Filename
			}
			if err := writeOutput(cmd.OutOrStdout(), dest, file.Content); err != nil {
				return codeError(exitInternal, "%s", err)
			}
			if dest != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d registros gravados em %s (%d linhas ignoradas)\n",
					file.RowCount, dest, res.InvalidRowCount)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&to, "to", "json", "Output format: json, xlsx or csv")
	f.StringVarP(&out, "out", "o", "", "Output path (default: generated file name, - for stdout)")
	return cmd
}

func newTemplateCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:       "template <name>",
		Short:     "Write a header-only CSV import template",
		Long:      "Templates: " + strings.Join(tabular.TemplateNames(), ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: tabular.TemplateNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, exp, err := settings()
			if err != nil {
				return codeError(exitBadInput, "%s", err)
			}
			file := application.NewExporter(exp).TemplateFile(args[0])
			if !file.Success {
				return codeError(exitBadInput, "%s (known: %s)", file.Err, strings.Join(tabular.TemplateNames(), ", "))
			}
			dest := out
			if dest == "" {
				dest = file.Filename
			}
			if err := writeOutput(cmd.OutOrStdout(), dest, file.Content); err != nil {
				return codeError(exitInternal, "%s", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (default: modelo_<name>.csv, - for stdout)")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	var email, role string
	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Read a password from stdin and print its bcrypt hash",
		Long: "Reads one line from stdin and prints a bcrypt hash. With --email the\n" +
			"output is a complete AUTH_USERS entry (email|role|hash).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return codeError(exitBadInput, "read password: %s", err)
			}
			password := strings.TrimRight(line, "\r\n")
			if password == "" {
				return codeError(exitBadInput, "empty password")
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return codeError(exitInternal, "%s", err)
			}
			if email == "" {
				fmt.Fprintln(cmd.OutOrStdout(), hash)
				return nil
			}
			r, err := auth.ParseRole(role)
			if err != nil {
				return codeError(exitBadInput, "%s", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s|%s|%s\n", strings.ToLower(strings.TrimSpace(email)), r, hash)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&email, "email", "", "Emit a full allow-list entry for this email")
	f.StringVar(&role, "role", string(auth.RoleViewer), "Role for the allow-list entry")
	return cmd
}

// writeOutput writes data to path, or to w when path is "-".
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
