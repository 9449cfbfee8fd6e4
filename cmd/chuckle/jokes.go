package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinytelemetry/chuckle/internal/apiclient"
	"github.com/tinytelemetry/chuckle/internal/router"
	"github.com/tinytelemetry/chuckle/internal/viewmodel"
)

func newJokesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "jokes <category>",
		Short: "Print a batch of jokes from one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(c.cfg, c.logger, nil)
			if err != nil {
				return err
			}

			vm := viewmodel.NewCategory(args[0], client, apiclient.NewEndpoints(c.cfg.BaseURL), viewModelOptions(c.cfg, c.logger)...)
			defer vm.Close()
			vm.Start(cmd.Context())
			vm.Wait()

			s := vm.State()
			if msg := s.ErrorMessage(); msg != "" {
				return fmt.Errorf("fetching %s jokes: %s", s.CategoryName(), msg)
			}
			out := cmd.OutOrStdout()
			for i, joke := range s.Jokes() {
				fmt.Fprintf(out, "%d. %s\n", i+1, joke)
			}
			return nil
		},
	}
}

func newCategoriesCmd(c *cli) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Print a random joke and the joke categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(c.cfg, c.logger, nil)
			if err != nil {
				return err
			}

			vm := viewmodel.NewHome(client, router.New(), apiclient.NewEndpoints(c.cfg.BaseURL), viewModelOptions(c.cfg, c.logger)...)
			defer vm.Close()
			vm.Start(cmd.Context())
			vm.Wait()
			if filter != "" {
				vm.Send(viewmodel.HomeSearchTextChanged{Text: filter})
			}

			s := vm.State()
			out := cmd.OutOrStdout()
			if msg := s.RandomJokeError(); msg != "" {
				fmt.Fprintf(out, "Random joke unavailable: %s\n", msg)
			} else {
				fmt.Fprintf(out, "%s\n", s.RandomJokeText())
			}
			fmt.Fprintln(out)

			if msg := s.CategoriesError(); msg != "" {
				return errors.New("fetching categories: " + msg)
			}
			for _, name := range s.FilteredCategories() {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "only list categories matching this pattern")
	return cmd
}
