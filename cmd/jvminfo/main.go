//go:build unix

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deepnoodle-ai/jnigo"
)

var (
	red   = color.New(color.FgRed).SprintfFunc()
	green = color.New(color.FgGreen).SprintfFunc()
	bold  = color.New(color.Bold).SprintfFunc()
)

func fatal(msg interface{}) {
	fmt.Fprintf(os.Stderr, "%s\n", red("%v", msg))
	os.Exit(1)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "jvminfo",
		Short: "Inspect a JVM through its native interface",
		Long: "jvminfo loads a JVM shared library, starts a VM and reports its\n" +
			"interface version. With --probe it additionally throws and catches a\n" +
			"Java exception to exercise the full call protocol round trip.",
		Run: func(cmd *cobra.Command, args []string) {
			opts := []jnigo.Option{
				jnigo.WithIgnoreUnrecognized(),
			}
			if lib := viper.GetString("lib"); lib != "" {
				opts = append(opts, jnigo.WithLibraryPath(lib))
			}
			if vmArgs := viper.GetStringSlice("vm-arg"); len(vmArgs) > 0 {
				opts = append(opts, jnigo.WithVMArgs(vmArgs...))
			}
			if viper.GetBool("verbose") {
				log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
					Level(zerolog.TraceLevel).With().Timestamp().Logger()
				opts = append(opts, jnigo.WithLogger(log))
			}
			rt, err := jnigo.Open(opts...)
			if err != nil {
				fatal(err)
			}
			defer rt.Close()

			e := rt.Env()
			fmt.Printf("%s %s\n", bold("interface version:"), e.Version())
			fmt.Printf("%s %s\n", bold("attachment:"), e.AttachmentID())

			if viper.GetBool("probe") {
				if err := probe(e); err != nil {
					fatal(err)
				}
				fmt.Println(green("probe: exception round trip ok"))
			}
		},
	}

	flags := rootCmd.Flags()
	flags.String("lib", "", "Path to the JVM shared library (default: $JAVA_HOME/lib/server/libjvm.so)")
	flags.StringSlice("vm-arg", nil, "JVM launch argument (repeatable)")
	flags.Bool("probe", false, "Throw and catch a Java exception as a health check")
	flags.Bool("verbose", false, "Log call refusals and caught exceptions")
	_ = viper.BindPFlags(flags)
	viper.SetEnvPrefix("jvminfo")
	viper.AutomaticEnv()

	if err := rootCmd.Execute(); err != nil {
		fatal(err)
	}
}
