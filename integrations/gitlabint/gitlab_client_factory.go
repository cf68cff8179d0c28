package gitlabint

import (
	"strings"

	"github.com/l3montree-dev/dashcase/shared"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

const defaultGitlabURL = "https://gitlab.com"

type SimpleGitlabClientFactory struct{}

func NewGitlabClientFactory() SimpleGitlabClientFactory {
	return SimpleGitlabClientFactory{}
}

func (factory SimpleGitlabClientFactory) FromAccessToken(accessToken string, baseURL string) (shared.GitlabClientFacade, error) {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultGitlabURL
	}
	client, err := gitlab.NewClient(accessToken, gitlab.WithBaseURL(baseURL))
	if err != nil {
		return gitlabClient{}, err
	}
	return gitlabClient{Client: client}, nil
}
