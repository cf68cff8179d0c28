package gitlabint

import (
	"github.com/l3montree-dev/dashcase/shared"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(fx.Annotate(NewGitlabClientFactory, fx.As(new(shared.GitlabClientFactory)))),
)
