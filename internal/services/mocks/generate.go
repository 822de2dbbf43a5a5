package mocks

//go:generate go run github.com/golang/mock/mockgen -destination=mock_suggestion_repository.go -package=mocks github.com/bionicotaku/lingo-services-social/internal/services SuggestionRepository
//go:generate go run github.com/golang/mock/mockgen -destination=mock_follow_repository.go -package=mocks github.com/bionicotaku/lingo-services-social/internal/services FollowRepository
//go:generate go run github.com/golang/mock/mockgen -destination=mock_profile_projection_repository.go -package=mocks github.com/bionicotaku/lingo-services-social/internal/services ProfileProjectionRepository
//go:generate go run github.com/golang/mock/mockgen -destination=mock_video_projection_repository.go -package=mocks github.com/bionicotaku/lingo-services-social/internal/services VideoProjectionRepository
//go:generate go run github.com/golang/mock/mockgen -destination=mock_suggestion_log_repository.go -package=mocks github.com/bionicotaku/lingo-services-social/internal/services SuggestionLogRepository
//go:generate go run github.com/golang/mock/mockgen -destination=mock_inbox_repository.go -package=mocks github.com/bionicotaku/lingo-services-social/internal/services InboxRepository
//go:generate go run github.com/golang/mock/mockgen -destination=mock_outbox_repository.go -package=mocks github.com/bionicotaku/lingo-services-social/internal/services OutboxRepository
//go:generate go run github.com/golang/mock/mockgen -destination=mock_frame_extractor.go -package=mocks github.com/bionicotaku/lingo-services-social/internal/services FrameExtractor
