package snake

import (
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func asFlags(f *pflag.Flag) string {
	if f.Shorthand != "" {
		return fmt.Sprintf("--%s, -%s", f.Name, f.Shorthand)
	}
	return fmt.Sprintf("--%s", f.Name)
}

// promptable reports whether f should be asked for: a visible string flag
// the user did not set.
func promptable(f *pflag.Flag) bool {
	return !f.Hidden && !f.Changed && f.Value.Type() == "string"
}

// PromptFlags asks for every local string flag of cmd that was not given on
// the command line and sets the answers on the flag set. Flags named in
// required must not be left empty.
func PromptFlags(cmd *cobra.Command, required ...string) error {
	must := make(map[string]bool, len(required))
	for _, name := range required {
		must[name] = true
	}
	var fs []*pflag.Flag
	cmd.LocalNonPersistentFlags().VisitAll(func(f *pflag.Flag) {
		if promptable(f) {
			fs = append(fs, f)
		}
	})

	for _, f := range fs {
		answer, err := PromptFlagString(cmd, f, must[f.Name])
		if err != nil {
			return err
		}
		if err := cmd.Flags().Set(f.Name, answer); err != nil {
			return fmt.Errorf("%s: %w", asFlags(f), err)
		}
	}
	return nil
}

// PromptFlagString asks for one flag value, offering its default.
func PromptFlagString(cmd *cobra.Command, f *pflag.Flag, required bool) (string, error) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", asFlags(f), f.Usage)

	validate := func(input string) error {
		if input == "" && f.DefValue == "" && required {
			return errors.New("required")
		}
		return nil
	}

	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} : ",
		Valid:   "{{ . | green }} : ",
		Invalid: "{{ . | red }} : ",
		Success: "{{ . | bold }} : ",
	}

	prompt := promptui.Prompt{
		Label:     f.Name,
		Default:   f.DefValue,
		Templates: templates,
		Validate:  validate,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopWriteCloser{cmd.OutOrStdout()},
	}

	result, err := prompt.Run()
	if err != nil {
		return "", err
	}
	if result == "" {
		result = f.DefValue
	}
	return result, nil
}
