// Package search 为 textSearch 阶段提供候选视频 ID，只查询不建索引
package search

import (
	"context"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/olivere/elastic/v7"
	"github.com/pkg/errors"

	"MediaHub.com/cmd/model"
	"MediaHub.com/config"
	"MediaHub.com/pkg/dal/db"
)

type Searcher interface {
	SearchVideoIDs(ctx context.Context, query string, limit int) ([]int64, error)
}

// ElasticSearcher 在外部维护的视频索引上做 title/description 全文检索，文档 _id 即视频 ID
type ElasticSearcher struct {
	client *elastic.Client
	index  string
}

func NewElasticSearcher(cfg *config.Config) (*ElasticSearcher, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(cfg.Elasticsearch.URLs...),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	)
	if err != nil {
		return nil, errors.WithMessage(err, "create elasticsearch client failed")
	}
	hlog.Infof("Connect Elasticsearch Success: %v", cfg.Elasticsearch.URLs)
	return &ElasticSearcher{client: client, index: cfg.Elasticsearch.Index}, nil
}

func (s *ElasticSearcher) SearchVideoIDs(ctx context.Context, query string, limit int) ([]int64, error) {
	res, err := s.client.Search().
		Index(s.index).
		Query(elastic.NewMultiMatchQuery(query, "title", "description")).
		FetchSource(false).
		Size(limit).
		Do(ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "elasticsearch query failed")
	}
	ids := make([]int64, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		id, err := strconv.ParseInt(hit.Id, 10, 64)
		if err != nil {
			hlog.CtxWarnf(ctx, "skip search hit with non-numeric id %q", hit.Id)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// SQLSearcher 未配置 Elasticsearch 时按 LIKE 匹配标题和描述
type SQLSearcher struct {
	store *db.Store
}

func NewSQLSearcher(store *db.Store) *SQLSearcher {
	return &SQLSearcher{store: store}
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func (s *SQLSearcher) SearchVideoIDs(ctx context.Context, query string, limit int) ([]int64, error) {
	pattern := "%" + likeEscaper.Replace(query) + "%"
	conn, cancel := s.store.WithContext(ctx)
	defer cancel()
	ids := make([]int64, 0)
	err := conn.Model(&model.Video{}).
		Where("title LIKE ? ESCAPE '!' OR description LIKE ? ESCAPE '!'", pattern, pattern).
		Order("id DESC").
		Limit(limit).
		Pluck("id", &ids).Error
	return ids, err
}

// New 按配置选择实现，Elasticsearch 连接失败时退回 SQL
func New(cfg *config.Config, store *db.Store) Searcher {
	if cfg.Elasticsearch.Enable && len(cfg.Elasticsearch.URLs) > 0 {
		es, err := NewElasticSearcher(cfg)
		if err == nil {
			return es
		}
		hlog.Errorf("elasticsearch unavailable, falling back to SQL search: %v", err)
	}
	return NewSQLSearcher(store)
}
