package main

import (
	"context"
	"os"

	"github.com/4thel00z/diverse/internal"
	"github.com/charmbracelet/fang"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	ctx := context.Background()

	app := newApp()
	rootCmd := NewRootCmd(version, app)
	if err := fang.Execute(ctx, rootCmd); err != nil {
		os.Exit(1)
	}
}

type app struct {
	resolver     *internal.ScopeResolver
	selectUC     *internal.SelectUseCase
	selectCorpus *internal.SelectCorpusUseCase
	corpusAdd    *internal.CorpusAddUseCase
	corpusList   *internal.CorpusListUseCase
	corpusRemove *internal.CorpusRemoveUseCase
	similarUC    *internal.SimilarUseCase
}

func newApp() *app {
	resolver := internal.NewScopeResolver()

	corpusFor := func(scope internal.Scope) (*internal.Corpus, error) {
		return internal.NewCorpus(scope)
	}

	return &app{
		resolver:     resolver,
		selectUC:     internal.NewSelectUseCase(resolver),
		selectCorpus: internal.NewSelectCorpusUseCase(resolver, corpusFor),
		corpusAdd:    internal.NewCorpusAddUseCase(resolver, corpusFor),
		corpusList:   internal.NewCorpusListUseCase(resolver, corpusFor),
		corpusRemove: internal.NewCorpusRemoveUseCase(resolver, corpusFor),
		similarUC:    internal.NewSimilarUseCase(resolver, corpusFor),
	}
}
