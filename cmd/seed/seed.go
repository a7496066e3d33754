package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"profile-backend/internal/domains/profile/model"
	"profile-backend/internal/domains/profile/service"
	"profile-backend/pkg/container"
)

const defaultSeedFile = "seeds/profile.json"

var (
	flagPrune    bool
	flagTimeout  time.Duration
	flagLockFile string
)

var rootCmd = &cobra.Command{
	Use:          "seed [file]",
	Short:        "Load a profile from JSON or YAML into the store (upsert by email)",
	Long:         "Reads a profile document (default " + defaultSeedFile + ", .yaml/.yml also accepted) and upserts it by email.\nWith --prune every other profile is removed in the same transaction.",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runSeed,
}

func init() {
	rootCmd.Flags().BoolVar(&flagPrune, "prune", true, "Remove every profile with a different email")
	rootCmd.Flags().DurationVar(&flagTimeout, "timeout", 30*time.Second, "Overall timeout for the seed")
	rootCmd.Flags().StringVar(&flagLockFile, "lock-file", filepath.Join(os.TempDir(), "profile-seed.lock"), "Lock file that keeps seed runs from overlapping")
}

func runSeed(cmd *cobra.Command, args []string) error {
	path := defaultSeedFile
	if len(args) == 1 {
		path = args[0]
	}

	req, err := loadSeedFile(path)
	if err != nil {
		return err
	}

	unlock, err := acquireSeedLock(flagLockFile)
	if err != nil {
		return err
	}
	defer unlock()

	c, err := container.NewContainer()
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer c.Cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), flagTimeout)
	defer cancel()

	return seedProfile(ctx, c.ProfileService, req, flagPrune, cmd.OutOrStdout())
}

// loadSeedFile decodes a profile document, YAML for .yaml/.yml and JSON
// otherwise. Unknown fields are rejected so typos do not silently drop data.
func loadSeedFile(path string) (*model.UpsertProfileRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	var req model.UpsertProfileRequest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		err = dec.Decode(&req)
	default:
		dec := json.NewDecoder(f)
		dec.DisallowUnknownFields()
		err = dec.Decode(&req)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &req, nil
}

// acquireSeedLock fails fast when another seed run holds the lock.
func acquireSeedLock(path string) (func(), error) {
	l := flock.New(path)
	locked, err := l.TryLock()
	if err != nil {
		return func() {}, fmt.Errorf("cannot acquire seed lock: %w", err)
	}
	if !locked {
		return func() {}, fmt.Errorf("another seed is in progress (lock: %s)", path)
	}
	return func() { _ = l.Unlock() }, nil
}

func seedProfile(ctx context.Context, svc service.ServiceInterface, req *model.UpsertProfileRequest, prune bool, out io.Writer) error {
	result, err := svc.Seed(ctx, req, prune)
	if err != nil {
		return fmt.Errorf("seed error: %w", err)
	}

	verb := "Updated"
	if result.Created {
		verb = "Created"
	}
	fmt.Fprintf(out, "%s profile for %s\n", verb, result.Profile.Email)
	return nil
}
