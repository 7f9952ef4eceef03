package shared

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"resto/shared/cache"
	"resto/shared/constant"
	"resto/shared/dto"
	"resto/shared/timezone"

	"github.com/rs/zerolog/log"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func ConvertStringToInt(value string) (int, error) {
	intValue, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("failed to convert %q to int: %w", value, err)
	}

	return intValue, nil
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the non-zero `db` tagged fields of a struct into an update set,
// stamping the modification metadata.
func TransformFields(data any, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" {
			continue
		}

		if field.Kind() == reflect.Pointer {
			field = field.Elem()
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

func BuildCacheKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}

	return prefix + ":" + strings.Join(parts, ":")
}

// BuildCacheKeyWithQuery derives a stable key for a list query from its paging and filters.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	raw, err := json.Marshal(struct {
		Params dto.QueryParams `json:"params"`
		Where  string          `json:"where"`
		Args   map[string]any  `json:"args"`
	}{params, where, args})
	if err != nil {
		return BuildCacheKey(prefix, fmt.Sprintf("%d", params.Page), fmt.Sprintf("%d", params.Limit))
	}

	sum := sha256.Sum256(raw)

	return BuildCacheKey(prefix, hex.EncodeToString(sum[:8]))
}

// InvalidateCaches clears every key under each prefix. Failures are logged and returned joined.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefixes ...string) error {
	var errs []error

	for _, prefix := range prefixes {
		if err := redisCache.Clear(ctx, prefix+"*"); err != nil {
			log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate cache")

			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// CacheVersion returns the generation stored under key, or "0" when none was bumped yet.
func CacheVersion(ctx context.Context, redisCache cache.RedisCache, key string) string {
	var version string
	if err := redisCache.Get(ctx, key, &version); err != nil || version == "" {
		return "0"
	}

	return version
}

// BumpCacheVersion starts a new generation under key. Entries keyed by an older
// generation are never read again, including ones saved after the bump.
func BumpCacheVersion(ctx context.Context, redisCache cache.RedisCache, key string) error {
	version := strconv.FormatInt(time.Now().UnixNano(), 36)

	if err := redisCache.Save(ctx, key, version, 0); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to bump cache version")

		return err
	}

	return nil
}
