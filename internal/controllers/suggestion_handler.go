package controllers

import (
	"context"

	"github.com/bionicotaku/lingo-services-social/internal/models/vo"
	"github.com/bionicotaku/lingo-services-social/internal/services"
	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// SuggestionServiceAPI 定义 SuggestionHandler 依赖的 Service 能力。
type SuggestionServiceAPI interface {
	GetSuggestions(ctx context.Context, input services.GetSuggestionsInput) (*vo.SuggestionResponse, error)
	Follow(ctx context.Context, viewerID, targetID string) (*vo.FollowResult, error)
	Unfollow(ctx context.Context, viewerID, targetID string) (*vo.FollowResult, error)
	Dismiss(ctx context.Context, viewerID, targetID string) error
}

// SuggestionHandler 处理"可能认识的人"相关请求。
type SuggestionHandler struct {
	*BaseHandler
	service SuggestionServiceAPI
	log     *log.Helper
}

// NewSuggestionHandler 构造 SuggestionHandler。
func NewSuggestionHandler(service SuggestionServiceAPI, base *BaseHandler, logger log.Logger) *SuggestionHandler {
	if base == nil {
		base = NewBaseHandler(HandlerTimeouts{})
	}
	return &SuggestionHandler{
		BaseHandler: base,
		service:     service,
		log:         log.NewHelper(logger),
	}
}

// GetSuggestions 返回观察者的推荐列表。
func (h *SuggestionHandler) GetSuggestions(ctx context.Context, req *GetSuggestionsRequest) (*GetSuggestionsReply, error) {
	if req == nil {
		return nil, kerrors.BadRequest(reasonInvalidArgument, "request is nil")
	}
	meta := h.ExtractMetadata(ctx)
	if meta.InvalidUserInfo || meta.UserID == "" {
		return nil, errUnauthenticated()
	}

	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeQuery)
	defer cancel()

	res, err := h.service.GetSuggestions(timeoutCtx, services.GetSuggestionsInput{
		ViewerID: meta.UserID,
		Limit:    req.Limit,
	})
	if err != nil {
		h.log.WithContext(ctx).Errorw("msg", "get suggestions failed", "error", err)
		return nil, toKratosError(err)
	}
	return toSuggestionsReply(res), nil
}

// Follow 处理关注意图。重复关注返回成功且 changed=false。
func (h *SuggestionHandler) Follow(ctx context.Context, req *FollowRequest) (*FollowReply, error) {
	viewerID, err := h.mutationViewer(ctx, req)
	if err != nil {
		return nil, err
	}
	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeMutation)
	defer cancel()

	result, err := h.service.Follow(timeoutCtx, viewerID, req.TargetID)
	if err != nil {
		h.log.WithContext(ctx).Errorw("msg", "follow failed", "target_id", req.TargetID, "error", err)
		return nil, toKratosError(err)
	}
	return toFollowReply(result), nil
}

// Unfollow 处理取关意图。
func (h *SuggestionHandler) Unfollow(ctx context.Context, req *FollowRequest) (*FollowReply, error) {
	viewerID, err := h.mutationViewer(ctx, req)
	if err != nil {
		return nil, err
	}
	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeMutation)
	defer cancel()

	result, err := h.service.Unfollow(timeoutCtx, viewerID, req.TargetID)
	if err != nil {
		h.log.WithContext(ctx).Errorw("msg", "unfollow failed", "target_id", req.TargetID, "error", err)
		return nil, toKratosError(err)
	}
	return toFollowReply(result), nil
}

// Dismiss 处理推荐卡片的忽略意图。
func (h *SuggestionHandler) Dismiss(ctx context.Context, req *FollowRequest) (*EmptyReply, error) {
	viewerID, err := h.mutationViewer(ctx, req)
	if err != nil {
		return nil, err
	}
	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeMutation)
	defer cancel()

	if err := h.service.Dismiss(timeoutCtx, viewerID, req.TargetID); err != nil {
		h.log.WithContext(ctx).Errorw("msg", "dismiss suggestion failed", "target_id", req.TargetID, "error", err)
		return nil, toKratosError(err)
	}
	return &EmptyReply{}, nil
}

func (h *SuggestionHandler) mutationViewer(ctx context.Context, req *FollowRequest) (string, error) {
	if req == nil {
		return "", kerrors.BadRequest(reasonInvalidArgument, "request is nil")
	}
	if _, err := uuid.Parse(req.TargetID); err != nil {
		return "", kerrors.BadRequest(reasonInvalidArgument, "invalid target id")
	}
	meta := h.ExtractMetadata(ctx)
	if meta.InvalidUserInfo || meta.UserID == "" {
		return "", errUnauthenticated()
	}
	return meta.UserID, nil
}

func toSuggestionsReply(res *vo.SuggestionResponse) *GetSuggestionsReply {
	if res == nil {
		return &GetSuggestionsReply{Items: []SuggestionReply{}}
	}
	reply := &GetSuggestionsReply{
		Items:       make([]SuggestionReply, 0, len(res.Items)),
		Source:      res.Source,
		GeneratedAt: res.GeneratedAt,
	}
	for _, item := range res.Items {
		sample := item.MutualSample
		if sample == nil {
			sample = []string{}
		}
		reply.Items = append(reply.Items, SuggestionReply{
			TargetID:     item.TargetID,
			Username:     item.Username,
			DisplayName:  item.DisplayName,
			AvatarURL:    item.AvatarURL,
			Followed:     item.Followed,
			MutualCount:  item.MutualCount,
			MutualSample: sample,
			ReasonCode:   item.ReasonCode,
		})
	}
	return reply
}

func toFollowReply(result *vo.FollowResult) *FollowReply {
	if result == nil {
		return &FollowReply{}
	}
	return &FollowReply{
		TargetID:  result.TargetID,
		Following: result.Following,
		Changed:   result.Changed,
	}
}
