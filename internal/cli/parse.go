package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/boolean-maybe/sieve/search"
)

func newParseCommand() *cobra.Command {
	var canonical bool

	cmd := &cobra.Command{
		Use:   "parse QUERY...",
		Short: "Show how a query is tokenized",
		Long:  "Parses QUERY and prints the included and excluded field filters and the remaining free text as YAML.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			tokens := search.NewParser(cfg.SearchOptions()...).Parse(joinQuery(args))

			out := cmd.OutOrStdout()
			if canonical {
				_, err := fmt.Fprintln(out, search.Rebuild(tokens))
				return err
			}

			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(tokensNode(tokens)); err != nil {
				return fmt.Errorf("encode tokens: %w", err)
			}
			return enc.Close()
		},
	}
	cmd.Flags().BoolVar(&canonical, "canonical", false, "print the canonical query instead of YAML")
	return cmd
}

// tokensNode builds the YAML document by hand so fields keep query order.
func tokensNode(tokens search.SearchTokens) *yaml.Node {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	addScalar(doc, "query", tokens.OriginalQuery)
	addPair(doc, "included", termsNode(tokens.Included))
	addPair(doc, "excluded", termsNode(tokens.Excluded))
	addScalar(doc, "freeText", tokens.FreeText)
	return doc
}

func termsNode(terms search.Terms) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}
	if terms.Len() > 0 {
		node.Style = 0
	}
	for _, field := range terms.Fields() {
		values := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, v := range terms.Values(field) {
			values.Content = append(values.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v})
		}
		addPair(node, field, values)
	}
	return node
}

func addScalar(m *yaml.Node, key, value string) {
	addPair(m, key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value})
}

func addPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
}
