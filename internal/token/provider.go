// Package token 负责向平台侧换取短时效 access_token。
// 对下单流程而言这是一个不透明的凭证来源。
package token

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/go-redis/redis/v8"

	"qpay-checkout-api/internal/config"
	"qpay-checkout-api/internal/utils"
)

const cacheKey = "qpay:access_token"

// Provider 凭证提供方
type Provider interface {
	AccessToken(ctx context.Context) (string, error)
}

// PlatformProvider 调用平台 getToken 接口换取凭证，结果缓存在 Redis。
// cache 为 nil 时退化为每次请求实时换取。
type PlatformProvider struct {
	appID   string
	secret  string
	baseURL string
	timeout time.Duration
	cache   *redis.Client
}

func NewPlatformProvider(cfg config.GatewayCfg, cache *redis.Client) *PlatformProvider {
	return &PlatformProvider{
		appID:   cfg.PlatformAppID,
		secret:  cfg.PlatformSecret,
		baseURL: cfg.TokenURL,
		timeout: cfg.Timeout,
		cache:   cache,
	}
}

func (p *PlatformProvider) AccessToken(ctx context.Context) (string, error) {
	if p.cache != nil {
		if tok, err := p.cache.Get(ctx, cacheKey).Result(); err == nil && tok != "" {
			return tok, nil
		}
	}

	reqURL := fmt.Sprintf("%s?grant_type=client_credential&appid=%s&secret=%s",
		p.baseURL, url.QueryEscape(p.appID), url.QueryEscape(p.secret))
	body, err := utils.HttpGetJson(ctx, reqURL, p.timeout)
	if err != nil {
		return "", fmt.Errorf("get token request failed: %w", err)
	}

	var resp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
		Errcode     int    `json:"errcode"`
		Errmsg      string `json:"errmsg"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("token response undecodable: %w", err)
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("token rejected: errcode=%d errmsg=%s", resp.Errcode, resp.Errmsg)
	}

	if p.cache != nil {
		ttl := time.Duration(resp.ExpiresIn-60) * time.Second
		if ttl > 0 {
			if err := p.cache.Set(ctx, cacheKey, resp.AccessToken, ttl).Err(); err != nil {
				log.Printf("[Token] 缓存 access_token 失败: %v", err)
			}
		}
	}

	return resp.AccessToken, nil
}
