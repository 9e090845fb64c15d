package services

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FilterAll is the sentinel filter value the portal's tables send for an
// unfiltered column, treated the same as an empty string
const FilterAll = "All"

// ListQuery carries the common list parameters shared by every collection
// endpoint: pagination, free-text search and field sorting
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
	Filters bson.M
}

// NewListQuery returns a query with clamped pagination values
func NewListQuery(page, perPage int) ListQuery {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}
	return ListQuery{Page: page, PerPage: perPage, Filters: bson.M{}}
}

// WithFilter adds an equality filter unless the value is a sentinel
func (q ListQuery) WithFilter(field, value string) ListQuery {
	if value == "" || value == FilterAll {
		return q
	}
	q.Filters[field] = value
	return q
}

// WithBoolFilter adds a boolean filter when the value is present
func (q ListQuery) WithBoolFilter(field string, value *bool) ListQuery {
	if value == nil {
		return q
	}
	q.Filters[field] = *value
	return q
}

// BuildFilter merges the field filters with a case-insensitive substring
// search over the entity's searchable fields
func (q ListQuery) BuildFilter(searchFields []string) bson.M {
	filter := bson.M{}
	for k, v := range q.Filters {
		filter[k] = v
	}

	if q.Search != "" && len(searchFields) > 0 {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		or := make([]bson.M, 0, len(searchFields))
		for _, field := range searchFields {
			or = append(or, bson.M{field: bson.M{"$regex": pattern}})
		}
		filter["$or"] = or
	}

	return filter
}

// FindOptions builds the pagination and sort options. The record ID is
// always appended as a tiebreaker so pages stay stable across requests.
func (q ListQuery) FindOptions(defaultSort string) *options.FindOptions {
	sortField := q.SortBy
	if sortField == "" {
		sortField = defaultSort
	}

	direction := 1
	if q.SortDir == "desc" {
		direction = -1
	}

	sort := bson.D{{Key: sortField, Value: direction}}
	if sortField != "_id" {
		sort = append(sort, bson.E{Key: "_id", Value: direction})
	}

	skip := (q.Page - 1) * q.PerPage
	return options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(q.PerPage)).
		SetSort(sort)
}
