package eventbus

// 전역 토픽 선언: 기능별 기본 토픽 이름을 한 곳에서 관리합니다.
var (
	// TopicAnalysisRequests 는 비동기 분석 요청이다. processor 가 구독한다.
	TopicAnalysisRequests = NewTopic("press-lens.analysis.requests")
	// TopicAnalysisResults 는 분석 완료/실패 알림이다. 외부 구독자용.
	TopicAnalysisResults = NewTopic("press-lens.analysis.results")
)

var AllTopics = []Topic{
	TopicAnalysisRequests,
	TopicAnalysisResults,
}

// RetryTopics 는 재시도 토픽과 reinjector 를 갖는 토픽이다. 결과 토픽은 발행만 하므로 빠진다.
var RetryTopics = []Topic{
	TopicAnalysisRequests,
}
