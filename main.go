// lastpass-export exports every item and attachment from a LastPass
// vault to a local directory, optionally encrypting each artifact and
// writing a compact index.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/ErinsMatthew/lastpass-export/cmd"
	"github.com/ErinsMatthew/lastpass-export/internal/config"
	"github.com/ErinsMatthew/lastpass-export/internal/crypto"
	"github.com/ErinsMatthew/lastpass-export/internal/lpass"
	"github.com/ErinsMatthew/lastpass-export/internal/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:]))
}

func run(ctx context.Context, args []string) int {
	flags := flag.NewFlagSet("lastpass-export", flag.ContinueOnError)
	flags.SortFlags = false
	flags.SetOutput(io.Discard) // help and errors are printed below, not by pflag

	color := flags.StringP("color", "c", string(report.ColorAuto), "color output: auto, always or never")
	debug := flags.Bool("debug", false, "print debug traces")
	force := flags.BoolP("force", "f", false, "overwrite existing artifacts")
	jsonFormat := flags.BoolP("json", "j", false, "write item metadata as JSON instead of plain text")
	index := flags.BoolP("index", "i", false, "write an index of exported items")
	indexFile := flags.String("index-file", config.DefaultIndexFile, "index filename")
	noItems := flags.Bool("no-items", false, "skip item export (index only)")
	encrypt := flags.BoolP("encrypt", "e", false, "encrypt exported artifacts")
	passphraseFile := flags.StringP("passphrase-file", "k", "", "read encryption passphrase from file")
	keyringAccount := flags.String("passphrase-keyring", "", "read encryption passphrase from the OS keyring account")
	prompt := flags.Bool("passphrase-prompt", false, "prompt for the encryption passphrase")
	cipherName := flags.String("cipher", "", "cipher name (aes-256-cbc for openssl, aes256 for gpg)")
	kdf := flags.String("kdf", "pbkdf2", "key derivation function (openssl program only)")
	iterations := flags.Int("iterations", crypto.DefaultIterations, "KDF iteration count")
	program := flags.String("program", config.ProgramOpenSSL, "encryption program: openssl or gpg")
	suffix := flags.String("suffix", crypto.DefaultSuffix, "filename suffix for encrypted artifacts")
	quiet := flags.BoolP("quiet", "q", false, "suppress progress output")
	stayLoggedIn := flags.Bool("stay-logged-in", false, "skip lpass logout at the end")
	archiveFile := flags.StringP("archive", "a", "", "write a tar.gz archive of the output directory")
	jobs := flags.Int("jobs", 1, "number of concurrent item workers")
	username := flags.StringP("username", "u", "", "LastPass account for login")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(flags)
			return cmd.ExitOK
		}
		fmt.Fprintf(os.Stderr, "error: %v\n\n", err)
		printUsage(flags)
		return cmd.ExitSetup
	}

	if flags.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "error: exactly one output directory is required")
		fmt.Fprintln(os.Stderr)
		printUsage(flags)
		return cmd.ExitSetup
	}

	cfg := config.Default()
	cfg.OutputDir = flags.Arg(0)
	cfg.Overwrite = *force
	cfg.ExportItems = !*noItems
	cfg.BuildIndex = *index
	cfg.IndexFile = *indexFile
	cfg.ArchiveFile = *archiveFile
	cfg.Jobs = *jobs
	cfg.Username = *username
	cfg.StayLoggedIn = *stayLoggedIn
	cfg.Quiet = *quiet
	cfg.Debug = *debug
	cfg.Color = report.ColorMode(*color)

	if *jsonFormat {
		cfg.Format = lpass.FormatJSON
	}

	cfg.Encryption.Enabled = *encrypt
	cfg.Encryption.Program = *program
	cfg.Encryption.KDF = *kdf
	cfg.Encryption.Iterations = *iterations
	cfg.Encryption.Suffix = *suffix
	cfg.Encryption.PassphraseFile = *passphraseFile
	cfg.Encryption.KeyringAccount = *keyringAccount
	cfg.Encryption.Prompt = *prompt

	switch {
	case flags.Changed("cipher"):
		cfg.Encryption.Cipher = *cipherName
	case *program == config.ProgramGPG:
		cfg.Encryption.Cipher = "aes256"
	}

	return cmd.Export(ctx, cfg)
}

func printUsage(flags *flag.FlagSet) {
	fmt.Println("lastpass-export - export a LastPass vault to a local directory")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  lastpass-export [flags] <output-dir>")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Print(flags.FlagUsages())
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  lastpass-export ~/backup                      # plain-text export")
	fmt.Println("  lastpass-export -j -i ~/backup                # JSON items plus index")
	fmt.Println("  lastpass-export -e -k pass.txt ~/backup       # encrypt with openssl envelope")
	fmt.Println("  lastpass-export -e --program gpg ~/backup     # encrypt with OpenPGP")
	fmt.Println("  lastpass-export -a backup.tar.gz ~/backup     # archive the result")
}
