package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"gitlab.com/semkodev/ccurl/api"
	"gitlab.com/semkodev/ccurl/config"
	"gitlab.com/semkodev/ccurl/convert"
	"gitlab.com/semkodev/ccurl/crypt"
	"gitlab.com/semkodev/ccurl/db"
	"gitlab.com/semkodev/ccurl/digest"
	"gitlab.com/semkodev/ccurl/logs"
	"gitlab.com/semkodev/ccurl/sponge"
)

func main() {
	logs.Setup()
	cfg, args, err := config.Load(os.Args[1:])
	if err != nil {
		logs.Log.Fatalf("Could not load config: %v", err)
	}
	logs.SetConfig(cfg)

	var database db.Interface
	var store digest.Storage
	if cfg.GetBool("database.enabled") {
		database, err = db.Load(cfg)
		if err != nil {
			logs.Log.Fatalf("Could not load database: %v", err)
		}
		digests := digest.NewStore(database)
		if cfg.GetBool("database.purge") {
			if err := digests.Purge(); err != nil {
				logs.Log.Fatalf("Could not purge stored digests: %v", err)
			}
			logs.Log.Info("Stored digests purged")
		}
		logs.Log.Infof("%v digests in store, %v written in total", digests.Count(), digests.Stored())
		store = digests
	}
	hasher := newHasher(cfg, store)

	if len(args) > 0 || cfg.GetBool("stdin") {
		var input io.Reader
		if cfg.GetBool("stdin") {
			input = os.Stdin
		}
		err = hashArguments(hasher, args, input, os.Stdout)
		closeDatabase(database)
		if err != nil {
			logs.Log.Error(err)
			os.Exit(1)
		}
		return
	}

	Hello(cfg)
	StartCcurl(cfg, hasher, database)
}

func newHasher(cfg *viper.Viper, store digest.Storage) *digest.Hasher {
	var mode crypt.Mode
	if cfg.GetBool("curl.legacyRounds") {
		mode |= crypt.CompatFixedRounds
	}
	if cfg.GetBool("curl.legacySqueeze") {
		mode |= crypt.CompatSqueezeWindow
	}

	var cache *digest.Cache
	if size := cfg.GetInt("cache.size"); size > 0 {
		cache = digest.NewCache(size<<20, cfg.GetInt("cache.expire"))
	}

	defaults := digest.Params{
		Rounds: cfg.GetInt("curl.rounds"),
		Length: cfg.GetInt("curl.length"),
		Mode:   mode,
	}
	return digest.NewHasher(defaults, cfg.GetInt("hash.workers"), cache, store)
}

// hashArguments prints one digest per argument, then one per line of input
// when input is set. Empty lines are skipped.
func hashArguments(hasher *digest.Hasher, args []string, input io.Reader, out io.Writer) error {
	hash := func(trytes string) error {
		trits, err := convert.TrytesToTrits(trytes)
		if err != nil {
			return errors.Wrapf(err, "hash %q", trytes)
		}
		_, err = fmt.Fprintln(out, convert.TritsToTrytes(hasher.Hash(trits, digest.Params{})))
		return err
	}

	for _, arg := range args {
		if err := hash(arg); err != nil {
			return err
		}
	}

	if input == nil {
		return nil
	}
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 64*1024), 16<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		if err := hash(line); err != nil {
			return err
		}
	}
	return errors.Wrap(scanner.Err(), "read input")
}

func StartCcurl(cfg *viper.Viper, hasher *digest.Hasher, database db.Interface) {
	logs.Log.Info("Starting ccurl. Please wait...")
	registry := sponge.NewRegistry(cfg.GetInt("sessions.max"),
		time.Duration(cfg.GetInt("sessions.idleTimeout"))*time.Minute)
	api.Start(cfg, hasher, registry)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	<-ch

	// Clean exit
	logs.Log.Info("ccurl is shutting down. Please wait...")
	api.End()
	registry.Close()
	closeDatabase(database)
	logs.Log.Info("Bye!")
}

func closeDatabase(database db.Interface) {
	if database == nil {
		return
	}
	if err := database.Close(); err != nil {
		logs.Log.Errorf("Could not close database: %v", err)
	}
}

func Hello(cfg *viper.Viper) {
	if !cfg.GetBool("log.hello") {
		return
	}

	logs.Log.Info(" .o88b.  .o88b. db    db d8888b. db")
	logs.Log.Info("d8P  Y8 d8P  Y8 88    88 88  `8D 88")
	logs.Log.Info("8P      8P      88    88 88oobY' 88")
	logs.Log.Info("8b      8b      88    88 88`8b   88")
	logs.Log.Info("Y8b  d8 Y8b  d8 88b  d88 88 `88. 88booo.")
	logs.Log.Info(" `Y88P'  `Y88P' ~Y8888P' 88   YD Y88888P")
}
