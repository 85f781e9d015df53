package state

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssnest/common"
	"cssnest/config"
	"cssnest/misc"
)

// Open loads configuration and starts logging. With report requested all
// logs, the configuration file and its effective form go into debug report.
func (e *LocalEnv) Open(configFile string, report bool) (err error) {
	if e.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if report {
		if e.Rpt, err = e.Cfg.Reporting.Prepare(); err != nil {
			return fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		if err := e.reportConfig(configFile); err != nil {
			return err
		}
	}
	if e.Log, err = e.Cfg.Logging.Prepare(e.Rpt); err != nil {
		return fmt.Errorf("unable to prepare logs: %w", err)
	}
	e.RedirectStdLog()

	e.Log.Debug("Program started",
		zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()),
		zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))
	if e.Rpt != nil {
		e.Log.Info("Creating debug report", zap.String("location", e.Rpt.Name()))
	}
	if len(configFile) == 0 {
		e.Log.Info("Using defaults (no configuration file)")
	}
	return nil
}

func (e *LocalEnv) reportConfig(configFile string) error {
	if len(configFile) > 0 {
		if err := e.Rpt.StoreCopy("config/"+filepath.Base(configFile), configFile); err != nil {
			return err
		}
	}
	data, err := config.Dump(e.Cfg)
	if err != nil {
		return err
	}
	e.Rpt.StoreData("config/effective.yaml", data)
	return nil
}

// SelectReport sets format of the diagnostics report and where it goes, empty
// output keeps stdout.
func (e *LocalEnv) SelectReport(format, output string) error {
	f, err := common.ParseOutputFmt(format)
	if err != nil {
		return fmt.Errorf("unable to select report format: %w", err)
	}
	e.Format = f

	if len(output) == 0 {
		return nil
	}
	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("unable to create report file: %w", err)
	}
	if e.closeOut != nil {
		_ = e.closeOut()
	}
	e.Out, e.closeOut = out, out.Close
	return nil
}

// Close releases everything Open and SelectReport acquired. Logging is
// finished first, so errors from here on could only be returned.
func (e *LocalEnv) Close() (err error) {
	if e.closeOut != nil {
		if er := e.closeOut(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close report file: %w", er))
		}
		e.Out, e.closeOut = os.Stdout, nil
	}

	if e.Log != nil {
		e.Log.Debug("Program ended", zap.Duration("elapsed", e.Uptime()))
	}
	e.RestoreStdLog()

	if e.Rpt != nil {
		if er := e.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}

	if e.Cfg == nil || len(e.Cfg.Logging.FileLogger.Destination) == 0 {
		return err
	}
	// crash output is not needed anymore, drop it if nothing was written
	debug.SetCrashOutput(nil, debug.CrashOptions{})
	name := filepath.Join(filepath.Dir(e.Cfg.Logging.FileLogger.Destination), misc.GetAppName()+"-panic.log")
	if fi, er := os.Stat(name); er == nil && fi.Size() == 0 {
		if er := os.Remove(name); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log file '%s': %w", name, er))
		}
	}
	return err
}
