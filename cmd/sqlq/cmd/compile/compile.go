package compile

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tidwall/sjson"

	"github.com/mitranim/sqlq"
	"github.com/mitranim/sqlq/internal/config"
	"github.com/mitranim/sqlq/internal/logger"
	"github.com/mitranim/sqlq/internal/querydoc"
)

var (
	Cmd = &cobra.Command{
		Use:   "compile [flags] FILE",
		Short: "compile the queries of a YAML document into SQL and parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := Config.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			if err := logger.SetLogLevel(Config.Log.Level, Config.Log.Format); err != nil {
				return err
			}
			return run(os.Stdout, args[0], queryName, Config)
		},
	}
	Config    = config.NewConfig()
	queryName string
)

func init() {
	Cmd.Flags().StringP("placeholder", "p", sqlq.PlaceholderQuestion.String(), "placeholder style [question|dollar]")
	Cmd.Flags().StringP("format", "f", config.OutputFormatText, "output format [text|json]")
	Cmd.Flags().StringVarP(&queryName, "name", "n", "", "compile only the query with this name")

	if err := viper.BindPFlag("compile.placeholder", Cmd.Flags().Lookup("placeholder")); err != nil {
		log.Fatal().Err(err).Msg("")
	}
	if err := viper.BindPFlag("compile.format", Cmd.Flags().Lookup("format")); err != nil {
		log.Fatal().Err(err).Msg("")
	}
}

type compiled struct {
	name string
	text string
	args []any
}

func run(out io.Writer, path string, name string, cfg *config.Config) error {
	doc, err := querydoc.Load(path)
	if err != nil {
		return err
	}
	log.Debug().
		Str("Path", path).
		Int("Queries", len(doc.Queries)).
		Str("Placeholder", cfg.Compile.Placeholder.String()).
		Msg("loaded query document")

	res, err := compileDocument(doc, name, cfg.Compiler())
	if err != nil {
		return err
	}

	switch cfg.Compile.Format {
	case config.OutputFormatJson:
		return renderJson(out, cfg.Compile.Placeholder, res)
	default:
		return renderText(out, res)
	}
}

func compileDocument(doc *querydoc.Document, name string, compiler sqlq.Compiler) ([]compiled, error) {
	var res []compiled
	for ind := range doc.Queries {
		query := &doc.Queries[ind]
		if name != "" && query.Name != name {
			continue
		}

		stmt, err := query.Build()
		if err != nil {
			return nil, err
		}

		text, args, err := compiler.Compile(stmt)
		if err != nil {
			return nil, fmt.Errorf("query %q: %w", query.Name, err)
		}

		log.Debug().
			Str("Query", query.Name).
			Int("Params", len(args)).
			Msg("compiled query")
		res = append(res, compiled{name: query.Name, text: text, args: args})
	}

	if name != "" && len(res) == 0 {
		return nil, fmt.Errorf("query %q not found", name)
	}
	return res, nil
}

func renderText(out io.Writer, res []compiled) error {
	for ind, item := range res {
		if ind > 0 {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
		}
		if item.name != "" {
			if _, err := fmt.Fprintf(out, "-- %s\n", item.name); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(out, item.text); err != nil {
			return err
		}
		if len(item.args) == 0 {
			continue
		}

		var data [][]string
		for argInd, arg := range item.args {
			value, err := cast.ToStringE(arg)
			if err != nil {
				value = fmt.Sprintf("%v", arg)
			}
			data = append(data, []string{
				strconv.Itoa(argInd + 1),
				value,
				fmt.Sprintf("%T", arg),
			})
		}

		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"#", "value", "type"})
		table.AppendBulk(data)
		table.Render()
	}
	return nil
}

func renderJson(out io.Writer, placeholder sqlq.Placeholder, res []compiled) error {
	doc := `{"queries":[]}`
	doc, err := sjson.Set(doc, "placeholder", placeholder.String())
	if err != nil {
		return fmt.Errorf("cannot encode output: %w", err)
	}

	for _, item := range res {
		obj := `{}`
		if obj, err = sjson.Set(obj, "name", item.name); err != nil {
			return fmt.Errorf("cannot encode output: %w", err)
		}
		if obj, err = sjson.Set(obj, "sql", item.text); err != nil {
			return fmt.Errorf("cannot encode output: %w", err)
		}
		params := item.args
		if params == nil {
			params = []any{}
		}
		if obj, err = sjson.Set(obj, "params", params); err != nil {
			return fmt.Errorf("cannot encode output: %w", err)
		}
		if doc, err = sjson.SetRaw(doc, "queries.-1", obj); err != nil {
			return fmt.Errorf("cannot encode output: %w", err)
		}
	}

	_, err = fmt.Fprintln(out, doc)
	return err
}
