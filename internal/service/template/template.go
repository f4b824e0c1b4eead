package template

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/errs"
	"gitee.com/flycash/order-notifier/internal/pkg/tenant"
	"gitee.com/flycash/order-notifier/internal/repository"
	"github.com/gotomicro/ego/core/elog"
	ca "github.com/patrickmn/go-cache"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/korean"
)

const (
	// SMSByteLimit 单条短信的 EUC-KR 字节数上限，超过之后按 LMS 发送
	SMSByteLimit = 90
	// KakaoCharLimit Kakao 消息的字符数上限
	KakaoCharLimit = 1000

	cacheTTL = 5 * time.Minute
)

var placeholder = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

//go:generate mockgen -source=./template.go -destination=./mocks/template.mock.go -package=templatemocks -typed Service
type Service interface {
	// Render 当前租户的模板优先，找不到时使用系统默认模板
	Render(ctx context.Context, name string, vars map[string]string, typ domain.Channel) (domain.RenderedTemplate, error)
	Save(ctx context.Context, t domain.Template) (domain.Template, error)
	Delete(ctx context.Context, name string, typ domain.Channel) error
	List(ctx context.Context) ([]domain.Template, error)
	// SeedDefaults 创建内置的默认模板，已经存在的不会覆盖
	SeedDefaults(ctx context.Context) error
}

type service struct {
	repo   repository.TemplateRepository
	cache  *ca.Cache
	logger *elog.Component
}

func NewService(repo repository.TemplateRepository, c *ca.Cache) Service {
	return &service{
		repo:   repo,
		cache:  c,
		logger: elog.DefaultLogger.With(elog.String("component", "template")),
	}
}

func (s *service) Render(ctx context.Context, name string, vars map[string]string, typ domain.Channel) (domain.RenderedTemplate, error) {
	if err := typ.Validate(); err != nil {
		return domain.RenderedTemplate{}, err
	}
	tpl, err := s.resolve(ctx, name, typ)
	if err != nil {
		return domain.RenderedTemplate{}, err
	}
	content := substitute(tpl.Content, vars)
	res := domain.RenderedTemplate{
		Subject:           substitute(tpl.Subject, vars),
		Content:           content,
		DeclaredVariables: tpl.Variables,
		Kind:              typ.DefaultKind(),
		TemplateCode:      tpl.TemplateCode,
		Unresolved:        missing(tpl.Content, vars),
	}
	if len(res.Unresolved) > 0 {
		s.logger.Warn("模板变量没有被替换",
			elog.String("template", name),
			elog.String("type", typ.String()),
			elog.Any("variables", res.Unresolved))
	}
	switch {
	case typ == domain.ChannelSMS:
		if EUCKRLen(content) > SMSByteLimit {
			res.Kind = domain.KindLMS
		}
	case typ.IsKakao():
		if n := utf8.RuneCountInString(content); n > KakaoCharLimit {
			return domain.RenderedTemplate{}, fmt.Errorf("%w: %s 内容 %d 字符，超过 %d", errs.ErrInvalidTemplate, name, n, KakaoCharLimit)
		}
	}
	return res, nil
}

// resolve 查找模板，结果按租户缓存
func (s *service) resolve(ctx context.Context, name string, typ domain.Channel) (domain.Template, error) {
	key := cacheKey(tenant.ID(ctx), name, typ)
	if v, ok := s.cache.Get(key); ok {
		return v.(domain.Template), nil
	}
	var (
		tpl domain.Template
		err = errs.ErrTemplateNotFound
	)
	if _, active := tenant.FromContext(ctx); active {
		tpl, err = s.repo.GetTenantTemplate(ctx, name, typ)
		if err != nil && !errors.Is(err, errs.ErrTemplateNotFound) {
			return domain.Template{}, err
		}
	}
	if err != nil {
		tpl, err = s.repo.GetDefaultTemplate(ctx, name, typ)
		if err != nil {
			return domain.Template{}, err
		}
	}
	s.cache.Set(key, tpl, cacheTTL)
	return tpl, nil
}

func (s *service) Save(ctx context.Context, t domain.Template) (domain.Template, error) {
	if err := t.Validate(); err != nil {
		return domain.Template{}, err
	}
	if len(t.Variables) == 0 {
		t.Variables = unresolved(t.Content)
	}
	saved, err := s.repo.Save(ctx, t)
	if err != nil {
		return domain.Template{}, err
	}
	s.cache.Delete(cacheKey(tenant.ID(ctx), t.Name, t.Type))
	return saved, nil
}

func (s *service) Delete(ctx context.Context, name string, typ domain.Channel) error {
	ok, err := s.repo.Delete(ctx, name, typ)
	if err != nil {
		return err
	}
	s.cache.Delete(cacheKey(tenant.ID(ctx), name, typ))
	if !ok {
		return fmt.Errorf("%w: name = %s, type = %s", errs.ErrTemplateNotFound, name, typ)
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]domain.Template, error) {
	return s.repo.List(ctx)
}

func (s *service) SeedDefaults(ctx context.Context) error {
	for _, t := range Defaults() {
		_, err := s.repo.GetDefaultTemplate(ctx, t.Name, t.Type)
		if err == nil {
			continue
		}
		if !errors.Is(err, errs.ErrTemplateNotFound) {
			return err
		}
		if _, err = s.repo.CreateDefaultTemplate(ctx, t); err != nil {
			return err
		}
		s.logger.Info("创建默认模板", elog.String("name", t.Name), elog.String("type", t.Type.String()))
	}
	return nil
}

func cacheKey(tenantID int64, name string, typ domain.Channel) string {
	return fmt.Sprintf("%d:%s:%s", tenantID, name, typ)
}

// substitute 字面量替换 {{key}}，不解析任何表达式
func substitute(content string, vars map[string]string) string {
	if content == "" || len(vars) == 0 {
		return content
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(content)
}

// missing 模板里声明了但是调用方没有提供的变量，变量值里出现的占位符不算
func missing(content string, vars map[string]string) []string {
	var res []string
	for _, key := range unresolved(content) {
		if _, ok := vars[key]; !ok {
			res = append(res, key)
		}
	}
	return res
}

func unresolved(content string) []string {
	matches := placeholder.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	res := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		res = append(res, m[1])
	}
	return res
}

// EUCKRLen 按 EUC-KR 编码计算字节数，无法编码的字符按 1 字节计算
func EUCKRLen(s string) int {
	encoded, err := encoding.ReplaceUnsupported(korean.EUCKR.NewEncoder()).String(s)
	if err != nil {
		return len(s)
	}
	return len(encoded)
}
