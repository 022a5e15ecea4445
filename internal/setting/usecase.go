package setting

import "context"

// Known keys.
const (
	KeySchemaVersion   = "schema_version"
	KeyInstitutionName = "institution_name"
)

type UseCase interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
}
