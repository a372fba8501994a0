package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"github.com/kaduacademy/console/internal/handler"
	appI18n "github.com/kaduacademy/console/internal/i18n"
	"github.com/kaduacademy/console/internal/model"
	"github.com/kaduacademy/console/internal/report"
	"github.com/kaduacademy/console/internal/report/export"
	"github.com/kaduacademy/console/internal/store"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "console",
		Short: "Kadu Academy exam administration console",
	}

	serve := serveCmd()
	root.AddCommand(serve, exportCmd())

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE

	// Register serve flags on root so bare `console --addr ...` still works.
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the admin console HTTP server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	f.String("db", "console.db", "SQLite database path")
	f.StringSliceP("users", "u", nil, "Paths to legacy user JSON exports to import (repeatable)")
	f.StringP("lang", "l", "en", "UI language")
	f.Bool("secure-cookies", true, "Set Secure flag on session cookies")
	f.String("admin-email", "admin@kaduacademy.in", "Seeded admin email")
	f.String("admin-password", "", "Initial admin password (or set KADU_ADMIN_PASSWORD)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a test's marks report as xlsx or pdf",
		RunE:  runExport,
	}
	f := cmd.Flags()
	f.String("db", "console.db", "SQLite database path")
	f.String("test-id", "", "Test identifier (required)")
	f.String("date-filter", string(report.FilterAllTime), "Submission date window")
	f.String("format", "xlsx", "Output format (xlsx, pdf)")
	f.String("sort", string(report.SortBySubmissionTime), "Row sort order")
	f.String("branch", "", "Branch filter (college tests)")
	f.String("year", "", "Year filter (college tests)")
	f.String("course", "", "Course filter (Kadu Academy tests)")
	f.StringP("output", "o", "", "Output file path (default: <title>_Marks_Report.<ext>)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")

	_ = cmd.MarkFlagRequired("test-id")

	return cmd
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("KADU")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("console")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/kadu-console")
	v.AddConfigPath("/etc/kadu-console")
	v.AddConfigPath("/data")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	db, err := store.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	// Seed default admin user if no users exist.
	if err := seedAdmin(db, v.GetString("admin-email"), v.GetString("admin-password")); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	// Import legacy user exports, once per file.
	if err := loadUsers(db, v.GetStringSlice("users")); err != nil {
		return fmt.Errorf("load users: %w", err)
	}

	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	h := handler.New(db, handler.Config{
		SecureCookies: v.GetBool("secure-cookies"),
	})

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appI18n.Middleware(lang))
	h.Routes(r)

	addr := v.GetString("addr")
	slog.Info("starting server",
		"addr", addr,
		"db", v.GetString("db"),
		"lang", lang,
	)
	return http.ListenAndServe(addr, r)
}

func runExport(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	format := v.GetString("format")
	if format != "xlsx" && format != "pdf" {
		return fmt.Errorf("unknown format %q: use xlsx or pdf", format)
	}

	db, err := store.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	test, err := db.GetTest(v.GetString("test-id"))
	if err != nil {
		return fmt.Errorf("get test: %w", err)
	}
	if test == nil {
		return fmt.Errorf("test %s not found", v.GetString("test-id"))
	}

	gen := report.NewGenerator(db)
	rows, err := gen.Generate(cmd.Context(), report.Params{
		Test:       test,
		DateFilter: report.DateFilter(v.GetString("date-filter")),
		Sort:       report.SortOption(v.GetString("sort")),
		Branch:     v.GetString("branch"),
		Year:       v.GetString("year"),
		Course:     v.GetString("course"),
	})
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	table, err := export.BuildTable(*test, rows, time.Now())
	if err != nil {
		return fmt.Errorf("build report table: %w", err)
	}

	outPath := v.GetString("output")
	if outPath == "" {
		outPath = export.Filename(test.Title, format)
	}
	var w io.Writer
	if outPath == "-" {
		w = os.Stdout
	} else {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if format == "xlsx" {
		err = export.WriteXLSX(table, w)
	} else {
		err = export.WritePDF(table, w)
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	slog.Info("exported report", "test_id", test.ID, "rows", len(rows), "output", outPath)
	return nil
}

// loadUsers imports legacy user exports, skipping files already imported or
// changed since their import so existing rows are never clobbered.
func loadUsers(db *store.Store, paths []string) error {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		hash := sha256sum(data)
		storedHash, err := db.GetImportedFileHash(path)
		if err != nil {
			return fmt.Errorf("check import status for %s: %w", path, err)
		}

		if storedHash == hash {
			slog.Info("users file unchanged, skipping", "path", path)
			continue
		}
		if storedHash != "" {
			slog.Warn("users file changed since last import, skipping to avoid clobbering existing users",
				"path", path)
			continue
		}

		var docs []store.RawUserDoc
		if err := json.Unmarshal(data, &docs); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		count, err := db.ImportRawUsers(docs)
		if err != nil {
			return fmt.Errorf("import users from %s: %w", path, err)
		}

		if err := db.SetImportedFileHash(path, hash); err != nil {
			return fmt.Errorf("record import for %s: %w", path, err)
		}
		slog.Info("imported users", "path", path, "count", count)
	}

	return nil
}

func sha256sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

func seedAdmin(db *store.Store, email, password string) error {
	count, err := db.UserCount()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if password == "" {
		return fmt.Errorf("admin password is required: set --admin-password flag or KADU_ADMIN_PASSWORD env var")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = db.CreateUser(model.User{
		Email:        email,
		FirstName:    "Administrator",
		PasswordHash: string(hash),
		Admin:        true,
	})
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	slog.Info("seeded default admin user", "email", email)
	return nil
}
