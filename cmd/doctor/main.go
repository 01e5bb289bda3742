// Command doctor verifies the external preconditions the intake system
// depends on: resolvable Google credentials, a reachable master sheet with
// recognizable headers, and the pre-shared root folder. It also reports the
// identity's storage quota and owned files, mirroring the checks an
// operator runs when setting up a new deployment. The -empty-trash flag
// purges trashed files to reclaim quota.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/rhk9003/metaads/internal/config"
	"github.com/rhk9003/metaads/internal/repository/googleapi"
	"github.com/rhk9003/metaads/internal/service/intake"
)

func main() {
	emptyTrash := flag.Bool("empty-trash", false, "permanently delete the identity's trashed files after the checks")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	fileCfg, err := config.LoadFile(cfg.ConfigFile)
	if err != nil {
		fail("config file: %v", err)
	}

	ctx := context.Background()

	creds, err := googleapi.ResolveCredentials(ctx, cfg, fileCfg, logger)
	if err != nil {
		fail("credentials: %v", err)
	}
	fmt.Printf("credentials: ok (%s, via %s)\n", creds.Mode, creds.Source)

	svcs, err := googleapi.NewServices(ctx, creds)
	if err != nil {
		fail("api clients: %v", err)
	}

	repoConfig := &googleapi.RepositoryConfig{Services: svcs, Logger: logger}
	driveRepo := googleapi.NewDriveRepository(repoConfig)
	sheetRepo := googleapi.NewSheetRepository(repoConfig, cfg.MasterSheetID)

	ok := true

	// Storage quota and owned files
	if quota, err := driveRepo.About(ctx); err != nil {
		fmt.Printf("drive quota: UNREACHABLE (%v)\n", err)
		ok = false
	} else {
		fmt.Printf("drive identity: %s\n", quota.UserEmail)
		fmt.Printf("drive quota: %s used of %s (trash %s)\n",
			formatBytes(quota.UsageBytes), formatBytes(quota.LimitBytes), formatBytes(quota.TrashBytes))
	}

	if files, err := driveRepo.ListOwned(ctx, 20); err != nil {
		fmt.Printf("owned files: UNREACHABLE (%v)\n", err)
		ok = false
	} else {
		fmt.Printf("owned files (first %d):\n", len(files))
		for _, f := range files {
			fmt.Printf("  [%s] %s (%s)\n", f.CreatedAt, f.Name, formatBytes(f.SizeBytes))
		}
	}

	if *emptyTrash {
		if err := driveRepo.EmptyTrash(ctx); err != nil {
			fmt.Printf("empty trash: FAILED (%v)\n", err)
			ok = false
		} else {
			fmt.Println("trash emptied")
		}
	}

	// Root folder must pre-exist and be shared to this identity
	if root, err := driveRepo.FindFolder(ctx, cfg.RootFolderName, ""); err != nil {
		fmt.Printf("root folder %q: MISSING, create it and share it to the service identity\n", cfg.RootFolderName)
		ok = false
	} else {
		fmt.Printf("root folder %q: ok (id %s)\n", cfg.RootFolderName, root.ID)
	}

	// Master sheet headers
	lookup := intake.NewCaseLookup(sheetRepo, fileCfg.Headers, logger)
	if err := lookup.ValidateHeaders(ctx); err != nil {
		fmt.Printf("master sheet: %v\n", err)
		ok = false
	} else {
		fmt.Printf("master sheet %s: headers ok\n", cfg.MasterSheetID)
	}

	if !ok {
		os.Exit(1)
	}
	fmt.Println("all checks passed")
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func formatBytes(n int64) string {
	const gb = 1 << 30
	if n >= gb {
		return fmt.Sprintf("%.2f GB", float64(n)/float64(gb))
	}
	const mb = 1 << 20
	if n >= mb {
		return fmt.Sprintf("%.2f MB", float64(n)/float64(mb))
	}
	return fmt.Sprintf("%d bytes", n)
}
