// Command ptxgen translates a textual LLVM IR module into PTX assembly
// text for a given NVIDIA SM architecture.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/treutech/ptxgen/internal/compiler"
	"github.com/treutech/ptxgen/internal/diag"
	"github.com/treutech/ptxgen/internal/version"
)

var (
	outputFile  string
	emitToFile  bool
	target      string
	debug       bool
	dumpIR      bool
	cfgFile     string
	showVersion bool
	fullVersion bool
)

// Color palette for diagnostic output: red for errors, yellow for
// warnings, green for a clean run.
var (
	colorError   = color.New(color.FgRed, color.Bold)
	colorWarning = color.New(color.FgYellow)
	colorSuccess = color.New(color.FgGreen)
)

var rootCmd = &cobra.Command{
	Use:   "ptxgen [source.ll]",
	Short: "Translate LLVM IR into NVIDIA PTX assembly",
	Long: `ptxgen lowers a textual LLVM IR module (.ll) into PTX assembly text
for a given streaming-multiprocessor target.

EXAMPLES:
  ptxgen kernel.ll                    # print PTX to stdout
  ptxgen kernel.ll --emit             # write ./out.ptx
  ptxgen kernel.ll -o kernel.ptx      # write to an explicit path
  ptxgen kernel.ll -t sm_80           # target sm_80 instead of sm_75`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if fullVersion {
			fmt.Println(version.Full())
			return
		}
		if showVersion {
			fmt.Println(version.String())
			return
		}
		if len(args) == 0 {
			cmd.Help()
			os.Exit(0)
		}
		if err := run(args[0]); err != nil {
			colorError.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "explicit output path (default: stdout)")
	rootCmd.Flags().BoolVar(&emitToFile, "emit", false, "write PTX to ./out.ptx instead of stdout")
	rootCmd.Flags().StringVarP(&target, "target", "t", "", "SM architecture, e.g. sm_75 (default: sm_75, or config value)")
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "print a per-function unhandled-instruction summary to stderr")
	rootCmd.Flags().BoolVar(&dumpIR, "dump-ir", false, "print the lowered instruction sequence before emission")
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default: ~/.ptxgen.yaml)")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "show version")
	rootCmd.Flags().BoolVar(&fullVersion, "version-full", false, "show detailed version, commit and build info")

	cobra.OnInitialize(initConfig)
}

// initConfig loads configuration from an explicit --config path, or
// ~/.ptxgen.yaml, plus environment variable overrides.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".ptxgen")
		}
	}
	viper.SetEnvPrefix("PTXGEN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && debug {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func resolveTarget() string {
	if target != "" {
		return target
	}
	if v := viper.GetString("target"); v != "" {
		return v
	}
	return compiler.DefaultTarget
}

func run(sourceFile string) error {
	data, err := os.ReadFile(sourceFile)
	if err != nil {
		return &compiler.IoError{Path: sourceFile, Err: err}
	}

	if dumpIR {
		dump, err := compiler.DumpIR(string(data))
		if err != nil {
			return err
		}
		fmt.Println(dump)
		return nil
	}

	stderrHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
	sink := diag.New(stderrHandler)

	ptx, err := compiler.Compile(string(data), resolveTarget(), sink)
	if err != nil {
		return err
	}

	if err := writeOutput(ptx); err != nil {
		return err
	}

	if debug {
		if summary := sink.Summary(); summary != "" {
			colorWarning.Fprint(os.Stderr, summary)
		} else {
			colorSuccess.Fprintln(os.Stderr, "no unhandled instructions")
		}
	}

	return nil
}

func writeOutput(ptx string) error {
	switch {
	case outputFile != "":
		return os.WriteFile(outputFile, []byte(ptx), 0o644)
	case emitToFile:
		return os.WriteFile(filepath.Join(".", "out.ptx"), []byte(ptx), 0o644)
	default:
		fmt.Println(ptx)
		return nil
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		colorError.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
