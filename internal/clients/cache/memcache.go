package cache

import (
	"encoding/json"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"max.ks1230/budget-tracker/internal/entity/budget"
	"max.ks1230/budget-tracker/internal/logger"
)

const (
	reportKeyPrefix = "report:"
	allTimeKey      = "all"
	// reports are invalidated on every write; the TTL only bounds staleness
	// when an invalidation is lost
	reportTTLSeconds = 600
)

type MemcacheClient struct {
	client *memcache.Client
}

type config interface {
	Hosts() []string
}

func NewMemcache(config config) (*MemcacheClient, error) {
	logger.Info("memcached hosts", zap.Strings("hosts", config.Hosts()))
	mc := memcache.New(config.Hosts()...)
	return &MemcacheClient{mc}, mc.Ping()
}

type cachedRecord struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type cachedReport struct {
	Period  string          `json:"period"`
	Records []cachedRecord  `json:"records"`
	Total   decimal.Decimal `json:"total"`
}

func formatKey(period string) string {
	if period == "" {
		period = allTimeKey
	}
	return reportKeyPrefix + period
}

func (mc *MemcacheClient) CacheReport(report budget.Report) error {
	logger.Info("cache report", zap.String("period", report.Period))

	value, err := json.Marshal(toCached(report))
	if err != nil {
		return errors.Wrap(err, "cache report")
	}
	return mc.client.Set(&memcache.Item{
		Key:        formatKey(report.Period),
		Value:      value,
		Expiration: reportTTLSeconds,
	})
}

func (mc *MemcacheClient) GetReport(period string) (budget.Report, error) {
	logger.Info("get report from cache", zap.String("period", period))

	item, err := mc.client.Get(formatKey(period))
	if err != nil {
		return budget.Report{}, err
	}
	var cached cachedReport
	if err = json.Unmarshal(item.Value, &cached); err != nil {
		return budget.Report{}, errors.Wrap(err, "decode cached report")
	}
	return fromCached(cached), nil
}

func (mc *MemcacheClient) InvalidateReports(periods []string) error {
	logger.Info("invalidate cached reports", zap.Strings("periods", periods))

	for _, period := range periods {
		err := mc.client.Delete(formatKey(period))
		if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
			return err
		}
	}
	return nil
}

func toCached(report budget.Report) cachedReport {
	res := cachedReport{
		Period:  report.Period,
		Records: make([]cachedRecord, 0, len(report.Records)),
		Total:   report.Total,
	}
	for _, rec := range report.Records {
		res.Records = append(res.Records, cachedRecord(rec))
	}
	return res
}

func fromCached(cached cachedReport) budget.Report {
	res := budget.Report{
		Period:  cached.Period,
		Records: make([]budget.ReportRecord, 0, len(cached.Records)),
		Total:   cached.Total,
	}
	for _, rec := range cached.Records {
		res.Records = append(res.Records, budget.ReportRecord(rec))
	}
	return res
}
