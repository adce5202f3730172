// klingwallet is a command-line HD wallet: mnemonic generation, seed and
// address derivation, and a password-sealed keystore.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/Klingon-tech/klingwallet/config"
	klog "github.com/Klingon-tech/klingwallet/internal/log"
	"github.com/Klingon-tech/klingwallet/internal/storage"
	"github.com/Klingon-tech/klingwallet/internal/wallet"
	"golang.org/x/term"
)

const version = "0.1.0"

// env is the resolved runtime context shared by all commands.
type env struct {
	cfg      *config.Config
	network  wallet.NetworkParams
	language wallet.Language
	kdf      wallet.EncryptionParams
}

func main() {
	flags, err := config.ParseFlags(os.Args[1:])
	if errors.Is(err, config.ErrHelp) {
		usage()
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		usage()
		os.Exit(1)
	}
	if flags.Version {
		fmt.Printf("klingwallet version %s\n", version)
		return
	}
	if len(flags.Args) == 0 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fatal("%v", err)
	}
	if err := klog.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		fatal("init logging: %v", err)
	}

	e := &env{cfg: cfg, kdf: cfg.KDF.EncryptionParams()}
	if e.network, err = cfg.WalletNetwork(); err != nil {
		fatal("%v", err)
	}
	if e.language, err = cfg.WalletLanguage(); err != nil {
		fatal("%v", err)
	}

	cmd := flags.Args[0]
	cmdArgs := flags.Args[1:]
	klog.CLI.Debug().Str("command", cmd).Str("network", string(cfg.Network)).Msg("dispatch")

	switch cmd {
	case "generate":
		cmdGenerate(e, cmdArgs)
	case "words":
		cmdWords(e, cmdArgs)
	case "languages":
		cmdLanguages()
	case "validate":
		cmdValidate(e, cmdArgs)
	case "seed":
		cmdSeed(e, cmdArgs)
	case "inspect":
		cmdInspect(e, cmdArgs)
	case "address":
		cmdAddress(e, cmdArgs)
	case "addresses":
		cmdAddresses(e, cmdArgs)
	case "create":
		cmdCreate(e, cmdArgs)
	case "open":
		cmdOpen(e, cmdArgs)
	case "list":
		cmdList(e)
	case "delete":
		cmdDelete(e, cmdArgs)
	case "purge":
		cmdPurge(e, cmdArgs)
	case "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: klingwallet [global flags] <command> [flags]

Global flags:
  --network <net>     mainnet (default), testnet, regtest or simnet
  --testnet           Shorthand for --network=testnet
  --datadir <path>    Data directory (default: ~/.klingwallet)
  --config, -c <file> Config file (default: <datadir>/klingwallet.conf)
  --language <lang>   Mnemonic wordlist (default: english)
  --log-level <lvl>   debug, info, warn (default), error, off
  --log-file <path>   Also write JSON logs to a file
  --log-json          Output logs as JSON
  --version           Show version information

Commands:
  generate [--bits n] [--language l]
                                  Print a fresh mnemonic (128-256 bits)
  words [--language l]            Print the wordlist
  languages                       List supported wordlists
  validate --mnemonic "..." [--language l]
                                  Check a mnemonic against the wordlist
  seed --mnemonic "..." [--passphrase p]
                                  Print the hex seed
  inspect --mnemonic "..." [--passphrase p]
                                  Print the full wallet state as JSON
  address --mnemonic "..." --path <path>
                                  Derive one address, e.g. m/44'/0'/0'/0/0
  addresses --mnemonic "..." [--count n] [--index i] [--account a]
                                  Derive external/change address pairs

  create --name <n> [--mnemonic "..."] [--passphrase p]
                                  Seal a wallet into the keystore
  open --name <n> [--count n] [--index i] [--account a]
                                  Unseal a wallet and print addresses
  list                            List stored wallets
  delete --name <n>               Remove a stored wallet
  purge --yes                     Remove every stored wallet of the network
`)
}

// ── Stateless commands ─────────────────────────────────────────────────

func cmdGenerate(e *env, args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	bits := fs.Int("bits", wallet.DefaultEntropyBits, "Entropy bits (128, 160, 192, 224 or 256)")
	lang := registerLanguageFlag(fs, e)
	fs.Parse(args)

	mnemonic, err := wallet.GenerateMnemonicBits(resolveLanguage(*lang), *bits)
	if err != nil {
		fatal("generate mnemonic: %v", err)
	}
	fmt.Println(mnemonic)
}

func cmdWords(e *env, args []string) {
	fs := flag.NewFlagSet("words", flag.ExitOnError)
	lang := registerLanguageFlag(fs, e)
	fs.Parse(args)

	words, err := wallet.Words(resolveLanguage(*lang))
	if err != nil {
		fatal("%v", err)
	}
	for _, w := range words {
		fmt.Println(w)
	}
}

func cmdLanguages() {
	for _, lang := range wallet.Languages() {
		fmt.Printf("%-20s %s\n", lang, lang.Label())
	}
}

func cmdValidate(e *env, args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	mnemonic := fs.String("mnemonic", "", "BIP-39 mnemonic")
	lang := registerLanguageFlag(fs, e)
	fs.Parse(args)

	if *mnemonic == "" {
		fatal("Usage: klingwallet validate --mnemonic \"word1 word2 ...\"")
	}
	if err := wallet.ValidateMnemonic(*mnemonic, resolveLanguage(*lang)); err != nil {
		fatal("%v", err)
	}
	fmt.Println("valid")
}

func cmdSeed(e *env, args []string) {
	w := openMnemonic(e, "seed", args, nil)
	hexSeed, err := w.HexSeed()
	if err != nil {
		fatal("%v", err)
	}
	fmt.Println(hexSeed)
}

func cmdInspect(e *env, args []string) {
	w := openMnemonic(e, "inspect", args, nil)
	in, err := w.Inspect()
	if err != nil {
		fatal("%v", err)
	}
	printJSON(in)
}

func cmdAddress(e *env, args []string) {
	var path *string
	w := openMnemonic(e, "address", args, func(fs *flag.FlagSet) {
		path = fs.String("path", "", "Derivation path, e.g. m/44'/0'/0'/0/0")
	})
	if *path == "" {
		fatal("Usage: klingwallet address --mnemonic \"...\" --path <path>")
	}
	rec, err := w.GenerateAddress(*path)
	if err != nil {
		fatal("%v", err)
	}
	printJSON(rec)
}

func cmdAddresses(e *env, args []string) {
	var opts *addressFlags
	w := openMnemonic(e, "addresses", args, func(fs *flag.FlagSet) {
		opts = registerAddressFlags(fs)
	})
	printAddresses(w, opts)
}

// openMnemonic parses --mnemonic/--passphrase (plus any extra flags) and
// builds an in-memory wallet.
func openMnemonic(e *env, name string, args []string, extra func(*flag.FlagSet)) *wallet.Wallet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	mnemonic := fs.String("mnemonic", "", "BIP-39 mnemonic")
	passphrase := fs.String("passphrase", "", "Optional BIP-39 passphrase")
	if extra != nil {
		extra(fs)
	}
	fs.Parse(args)

	if strings.TrimSpace(*mnemonic) == "" {
		fatal("Usage: klingwallet %s --mnemonic \"word1 word2 ...\"", name)
	}
	w, err := wallet.New(wallet.Options{
		Mnemonic:   *mnemonic,
		Passphrase: *passphrase,
		Language:   e.language,
		Network:    &e.network,
		KDF:        &e.kdf,
	})
	if err != nil {
		fatal("%v", err)
	}
	return w
}

type addressFlags struct {
	count, index, account *int
}

func registerAddressFlags(fs *flag.FlagSet) *addressFlags {
	return &addressFlags{
		count:   fs.Int("count", 1, "Number of address pairs"),
		index:   fs.Int("index", 0, "First address index"),
		account: fs.Int("account", 0, "BIP-44 account"),
	}
}

func printAddresses(w *wallet.Wallet, f *addressFlags) {
	pairs, err := w.GenerateAddresses(wallet.AddressOptions{
		Count:   *f.count,
		Index:   *f.index,
		Account: *f.account,
	})
	if err != nil {
		fatal("%v", err)
	}
	printJSON(pairs)
}

// ── Keystore commands ──────────────────────────────────────────────────

// openKeystore opens the Badger keystore namespaced to the configured
// network. The caller must close the returned DB.
func openKeystore(e *env) (*wallet.Keystore, storage.DB) {
	db, err := storage.NewBadger(e.cfg.KeystoreDir())
	if err != nil {
		fatal("open keystore: %v", err)
	}
	return wallet.NewKeystore(db, string(e.cfg.Network)), db
}

func cmdCreate(e *env, args []string) {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	mnemonic := fs.String("mnemonic", "", "BIP-39 mnemonic (generated when empty)")
	passphrase := fs.String("passphrase", "", "Optional BIP-39 passphrase")
	fs.Parse(args)

	if *name == "" {
		fatal("Usage: klingwallet create --name <name> [--mnemonic \"...\"]")
	}
	if err := wallet.ValidateName(*name); err != nil {
		fatal("%v", err)
	}

	ks, db := openKeystore(e)
	defer db.Close()

	if exists, err := ks.Has(*name); err != nil {
		fatal("%v", err)
	} else if exists {
		fatal("wallet %q already exists", *name)
	}

	w, err := wallet.New(wallet.Options{
		Mnemonic:   *mnemonic,
		Passphrase: *passphrase,
		Language:   e.language,
		Network:    &e.network,
		KDF:        &e.kdf,
	})
	if err != nil {
		fatal("%v", err)
	}

	if *mnemonic == "" {
		phrase, _ := w.Mnemonic()
		fmt.Println("Mnemonic (write this down!):")
		fmt.Printf("  %s\n\n", phrase)
	}

	password, err := readPassword("Enter password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	if string(password) != string(confirm) {
		fatal("passwords do not match")
	}

	snap, err := w.Export(string(password))
	if err != nil {
		fatal("seal wallet: %v", err)
	}
	if err := ks.Save(*name, snap); err != nil {
		fatal("%v", err)
	}

	fmt.Printf("Wallet created: %s\n", *name)
	fmt.Printf("Fingerprint: %s\n", w.Fingerprint())
}

func cmdOpen(e *env, args []string) {
	fs := flag.NewFlagSet("open", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	opts := registerAddressFlags(fs)
	fs.Parse(args)

	if *name == "" {
		fatal("Usage: klingwallet open --name <name> [--count n]")
	}

	ks, db := openKeystore(e)
	snap, err := ks.Load(*name)
	db.Close()
	if err != nil {
		fatal("%v", err)
	}

	password, err := readPassword("Password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	w, err := wallet.Restore(snap, string(password), &e.kdf)
	if errors.Is(err, wallet.ErrDecryption) {
		fatal("wrong password or corrupt wallet")
	}
	if err != nil {
		fatal("%v", err)
	}
	printAddresses(w, opts)
}

func cmdList(e *env) {
	ks, db := openKeystore(e)
	defer db.Close()

	names, err := ks.List()
	if err != nil {
		fatal("list wallets: %v", err)
	}
	if len(names) == 0 {
		fmt.Println("No wallets found.")
		return
	}
	for _, name := range names {
		fmt.Println(name)
	}
}

func cmdDelete(e *env, args []string) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	fs.Parse(args)

	if *name == "" {
		fatal("Usage: klingwallet delete --name <name>")
	}

	ks, db := openKeystore(e)
	defer db.Close()

	if err := ks.Delete(*name); err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Wallet deleted: %s\n", *name)
}

func cmdPurge(e *env, args []string) {
	fs := flag.NewFlagSet("purge", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Confirm removal of every wallet on the network")
	fs.Parse(args)

	if !*yes {
		fatal("Usage: klingwallet purge --yes (removes all %s wallets)", e.cfg.Network)
	}

	ks, db := openKeystore(e)
	defer db.Close()

	n, err := ks.Purge()
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Removed %d %s wallet(s)\n", n, e.cfg.Network)
}

// ── Helpers ────────────────────────────────────────────────────────────

// registerLanguageFlag lets a command override the global --language.
func registerLanguageFlag(fs *flag.FlagSet, e *env) *string {
	return fs.String("language", string(e.language), "Mnemonic wordlist")
}

func resolveLanguage(name string) wallet.Language {
	lang, err := wallet.ParseLanguage(name)
	if err != nil {
		fatal("%v", err)
	}
	return lang
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatal("encode output: %v", err)
	}
}

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return password, nil
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
