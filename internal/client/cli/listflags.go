package cli

import (
	"io"

	"github.com/dmitrijs2005/vsrclient/internal/client/paging"
	"github.com/spf13/pflag"
)

const (
	flagPage   = "page"
	flagLimit  = "limit"
	flagSort   = "sort"
	flagDesc   = "desc"
	flagSearch = "search"
)

// listOptions are the paging flags of list commands. Only flags the user
// set are applied; the rest keep the remembered value.
type listOptions struct {
	page   int
	limit  int
	sort   string
	desc   bool
	search string

	set map[string]bool
}

func bindListFlags(fs *pflag.FlagSet, o *listOptions) {
	fs.IntVar(&o.page, flagPage, paging.DefaultPage, "page number (from 1)")
	fs.IntVar(&o.limit, flagLimit, paging.DefaultLimit, "records per page")
	fs.StringVar(&o.sort, flagSort, "", "field to sort by")
	fs.BoolVar(&o.desc, flagDesc, false, "sort descending")
	fs.StringVar(&o.search, flagSearch, "", "search term")
}

// collect records which flags were set on fs.
func (o *listOptions) collect(fs *pflag.FlagSet) {
	o.set = make(map[string]bool)
	fs.Visit(func(f *pflag.Flag) { o.set[f.Name] = true })
}

// parseListArgs parses REPL arguments such as "--search go --page 2" and
// returns the options and the remaining positional arguments.
func parseListArgs(name string, args []string) (listOptions, []string, error) {
	var o listOptions
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	bindListFlags(fs, &o)
	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	o.collect(fs)
	return o, fs.Args(), nil
}

// apply updates q. Any of search, limit, sort or desc starts a new search
// from page 1; --page then moves within it.
func (o listOptions) apply(q *paging.Query) {
	if o.set[flagSearch] || o.set[flagLimit] || o.set[flagSort] || o.set[flagDesc] {
		term, limit, field, dir := q.Search, q.Limit, q.SortField, q.Direction
		if o.set[flagSearch] {
			term = o.search
		}
		if o.set[flagLimit] {
			limit = o.limit
		}
		if o.set[flagSort] {
			field = o.sort
		}
		if o.set[flagDesc] {
			dir = paging.Asc
			if o.desc {
				dir = paging.Desc
			}
		}
		q.Apply(term, limit, field, dir)
	}
	if o.set[flagPage] {
		q.SetPage(o.page)
	}
}
