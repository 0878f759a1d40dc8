package chatv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "chat.v1.ChatService"

const (
	ChatService_Register_FullMethodName            = "/chat.v1.ChatService/Register"
	ChatService_Login_FullMethodName               = "/chat.v1.ChatService/Login"
	ChatService_WatchConversations_FullMethodName  = "/chat.v1.ChatService/WatchConversations"
	ChatService_WatchMessages_FullMethodName       = "/chat.v1.ChatService/WatchMessages"
	ChatService_GetHistory_FullMethodName          = "/chat.v1.ChatService/GetHistory"
	ChatService_SendMessage_FullMethodName         = "/chat.v1.ChatService/SendMessage"
	ChatService_ResolveConversation_FullMethodName = "/chat.v1.ChatService/ResolveConversation"
	ChatService_ListNotifications_FullMethodName   = "/chat.v1.ChatService/ListNotifications"
	ChatService_GetProfile_FullMethodName          = "/chat.v1.ChatService/GetProfile"
	ChatService_Follow_FullMethodName              = "/chat.v1.ChatService/Follow"
	ChatService_Unfollow_FullMethodName            = "/chat.v1.ChatService/Unfollow"
	ChatService_SearchUsers_FullMethodName         = "/chat.v1.ChatService/SearchUsers"
	ChatService_ListMenu_FullMethodName            = "/chat.v1.ChatService/ListMenu"
	ChatService_PostBook_FullMethodName            = "/chat.v1.ChatService/PostBook"
	ChatService_FindBooks_FullMethodName           = "/chat.v1.ChatService/FindBooks"
)

// ChatServiceServer is the server API for ChatService.
type ChatServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	WatchConversations(*WatchConversationsRequest, grpc.ServerStreamingServer[ConversationsSnapshot]) error
	WatchMessages(*WatchMessagesRequest, grpc.ServerStreamingServer[MessagesSnapshot]) error
	GetHistory(*GetHistoryRequest, grpc.ServerStreamingServer[Message]) error
	SendMessage(context.Context, *SendMessageRequest) (*SendMessageResponse, error)
	ResolveConversation(context.Context, *ResolveConversationRequest) (*ResolveConversationResponse, error)
	ListNotifications(*ListNotificationsRequest, grpc.ServerStreamingServer[Notification]) error
	GetProfile(context.Context, *GetProfileRequest) (*Profile, error)
	Follow(context.Context, *FollowRequest) (*FollowResponse, error)
	Unfollow(context.Context, *FollowRequest) (*FollowResponse, error)
	SearchUsers(context.Context, *SearchUsersRequest) (*SearchUsersResponse, error)
	ListMenu(context.Context, *ListMenuRequest) (*ListMenuResponse, error)
	PostBook(context.Context, *PostBookRequest) (*Book, error)
	FindBooks(context.Context, *FindBooksRequest) (*FindBooksResponse, error)
}

// UnimplementedChatServiceServer answers every method with codes.Unimplemented.
// Embed it to stay forward compatible.
type UnimplementedChatServiceServer struct{}

func (UnimplementedChatServiceServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedChatServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedChatServiceServer) WatchConversations(*WatchConversationsRequest, grpc.ServerStreamingServer[ConversationsSnapshot]) error {
	return status.Errorf(codes.Unimplemented, "method WatchConversations not implemented")
}
func (UnimplementedChatServiceServer) WatchMessages(*WatchMessagesRequest, grpc.ServerStreamingServer[MessagesSnapshot]) error {
	return status.Errorf(codes.Unimplemented, "method WatchMessages not implemented")
}
func (UnimplementedChatServiceServer) GetHistory(*GetHistoryRequest, grpc.ServerStreamingServer[Message]) error {
	return status.Errorf(codes.Unimplemented, "method GetHistory not implemented")
}
func (UnimplementedChatServiceServer) SendMessage(context.Context, *SendMessageRequest) (*SendMessageResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SendMessage not implemented")
}
func (UnimplementedChatServiceServer) ResolveConversation(context.Context, *ResolveConversationRequest) (*ResolveConversationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ResolveConversation not implemented")
}
func (UnimplementedChatServiceServer) ListNotifications(*ListNotificationsRequest, grpc.ServerStreamingServer[Notification]) error {
	return status.Errorf(codes.Unimplemented, "method ListNotifications not implemented")
}
func (UnimplementedChatServiceServer) GetProfile(context.Context, *GetProfileRequest) (*Profile, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetProfile not implemented")
}
func (UnimplementedChatServiceServer) Follow(context.Context, *FollowRequest) (*FollowResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Follow not implemented")
}
func (UnimplementedChatServiceServer) Unfollow(context.Context, *FollowRequest) (*FollowResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Unfollow not implemented")
}
func (UnimplementedChatServiceServer) SearchUsers(context.Context, *SearchUsersRequest) (*SearchUsersResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SearchUsers not implemented")
}
func (UnimplementedChatServiceServer) ListMenu(context.Context, *ListMenuRequest) (*ListMenuResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListMenu not implemented")
}
func (UnimplementedChatServiceServer) PostBook(context.Context, *PostBookRequest) (*Book, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PostBook not implemented")
}
func (UnimplementedChatServiceServer) FindBooks(context.Context, *FindBooksRequest) (*FindBooksResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method FindBooks not implemented")
}

// RegisterChatServiceServer registers srv on s.
func RegisterChatServiceServer(s grpc.ServiceRegistrar, srv ChatServiceServer) {
	s.RegisterService(&ChatService_ServiceDesc, srv)
}

// unary adapts a typed unary method to a grpc.MethodHandler. Interceptors see
// the typed request.
func unary[Req, Res any, PReq wire[Req], PRes wire[Res]](fullMethod string, call func(ChatServiceServer, context.Context, *Req) (*Res, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		raw := newMessage[Req, PReq]()
		if err := dec(raw); err != nil {
			return nil, err
		}
		in := decode[Req, PReq](raw)
		handler := func(ctx context.Context, req any) (any, error) {
			res, err := call(srv.(ChatServiceServer), ctx, req.(*Req))
			if err != nil {
				return nil, err
			}
			return encode[Res, PRes](res), nil
		}
		if interceptor == nil {
			return handler(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, handler)
	}
}

// serverStream adapts a typed server-streaming method to a grpc.StreamHandler.
func serverStream[Req, Res any, PReq wire[Req], PRes wire[Res]](call func(ChatServiceServer, *Req, grpc.ServerStreamingServer[Res]) error) grpc.StreamHandler {
	return func(srv any, stream grpc.ServerStream) error {
		raw := newMessage[Req, PReq]()
		if err := stream.RecvMsg(raw); err != nil {
			return err
		}
		return call(srv.(ChatServiceServer), decode[Req, PReq](raw), &sender[Res, PRes]{ServerStream: stream})
	}
}

type sender[Res any, PRes wire[Res]] struct {
	grpc.ServerStream
}

func (s *sender[Res, PRes]) Send(v *Res) error {
	return s.ServerStream.SendMsg(encode[Res, PRes](v))
}

type receiver[Res any, PRes wire[Res]] struct {
	grpc.ClientStream
}

func (r *receiver[Res, PRes]) Recv() (*Res, error) {
	raw := newMessage[Res, PRes]()
	if err := r.ClientStream.RecvMsg(raw); err != nil {
		return nil, err
	}
	return decode[Res, PRes](raw), nil
}

// ChatService_ServiceDesc is the grpc.ServiceDesc for ChatService.
var ChatService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ChatServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unary(ChatService_Register_FullMethodName, ChatServiceServer.Register)},
		{MethodName: "Login", Handler: unary(ChatService_Login_FullMethodName, ChatServiceServer.Login)},
		{MethodName: "SendMessage", Handler: unary(ChatService_SendMessage_FullMethodName, ChatServiceServer.SendMessage)},
		{MethodName: "ResolveConversation", Handler: unary(ChatService_ResolveConversation_FullMethodName, ChatServiceServer.ResolveConversation)},
		{MethodName: "GetProfile", Handler: unary(ChatService_GetProfile_FullMethodName, ChatServiceServer.GetProfile)},
		{MethodName: "Follow", Handler: unary(ChatService_Follow_FullMethodName, ChatServiceServer.Follow)},
		{MethodName: "Unfollow", Handler: unary(ChatService_Unfollow_FullMethodName, ChatServiceServer.Unfollow)},
		{MethodName: "SearchUsers", Handler: unary(ChatService_SearchUsers_FullMethodName, ChatServiceServer.SearchUsers)},
		{MethodName: "ListMenu", Handler: unary(ChatService_ListMenu_FullMethodName, ChatServiceServer.ListMenu)},
		{MethodName: "PostBook", Handler: unary(ChatService_PostBook_FullMethodName, ChatServiceServer.PostBook)},
		{MethodName: "FindBooks", Handler: unary(ChatService_FindBooks_FullMethodName, ChatServiceServer.FindBooks)},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "WatchConversations", Handler: serverStream(ChatServiceServer.WatchConversations), ServerStreams: true},
		{StreamName: "WatchMessages", Handler: serverStream(ChatServiceServer.WatchMessages), ServerStreams: true},
		{StreamName: "GetHistory", Handler: serverStream(ChatServiceServer.GetHistory), ServerStreams: true},
		{StreamName: "ListNotifications", Handler: serverStream(ChatServiceServer.ListNotifications), ServerStreams: true},
	},
	Metadata: "chat/v1/chat.proto",
}

// ChatServiceClient is the client API for ChatService.
type ChatServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewChatServiceClient(cc grpc.ClientConnInterface) *ChatServiceClient {
	return &ChatServiceClient{cc: cc}
}

func invoke[Req, Res any, PReq wire[Req], PRes wire[Res]](ctx context.Context, cc grpc.ClientConnInterface, method string, in *Req, opts []grpc.CallOption) (*Res, error) {
	out := newMessage[Res, PRes]()
	if err := cc.Invoke(ctx, method, encode[Req, PReq](in), out, opts...); err != nil {
		return nil, err
	}
	return decode[Res, PRes](out), nil
}

func openStream[Req, Res any, PReq wire[Req], PRes wire[Res]](ctx context.Context, cc grpc.ClientConnInterface, desc *grpc.StreamDesc, method string, in *Req, opts []grpc.CallOption) (grpc.ServerStreamingClient[Res], error) {
	stream, err := cc.NewStream(ctx, desc, method, opts...)
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(encode[Req, PReq](in)); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return &receiver[Res, PRes]{ClientStream: stream}, nil
}

func (c *ChatServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterRequest, RegisterResponse](ctx, c.cc, ChatService_Register_FullMethodName, in, opts)
}

func (c *ChatServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginRequest, LoginResponse](ctx, c.cc, ChatService_Login_FullMethodName, in, opts)
}

func (c *ChatServiceClient) SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*SendMessageResponse, error) {
	return invoke[SendMessageRequest, SendMessageResponse](ctx, c.cc, ChatService_SendMessage_FullMethodName, in, opts)
}

func (c *ChatServiceClient) ResolveConversation(ctx context.Context, in *ResolveConversationRequest, opts ...grpc.CallOption) (*ResolveConversationResponse, error) {
	return invoke[ResolveConversationRequest, ResolveConversationResponse](ctx, c.cc, ChatService_ResolveConversation_FullMethodName, in, opts)
}

func (c *ChatServiceClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*Profile, error) {
	return invoke[GetProfileRequest, Profile](ctx, c.cc, ChatService_GetProfile_FullMethodName, in, opts)
}

func (c *ChatServiceClient) Follow(ctx context.Context, in *FollowRequest, opts ...grpc.CallOption) (*FollowResponse, error) {
	return invoke[FollowRequest, FollowResponse](ctx, c.cc, ChatService_Follow_FullMethodName, in, opts)
}

func (c *ChatServiceClient) Unfollow(ctx context.Context, in *FollowRequest, opts ...grpc.CallOption) (*FollowResponse, error) {
	return invoke[FollowRequest, FollowResponse](ctx, c.cc, ChatService_Unfollow_FullMethodName, in, opts)
}

func (c *ChatServiceClient) SearchUsers(ctx context.Context, in *SearchUsersRequest, opts ...grpc.CallOption) (*SearchUsersResponse, error) {
	return invoke[SearchUsersRequest, SearchUsersResponse](ctx, c.cc, ChatService_SearchUsers_FullMethodName, in, opts)
}

func (c *ChatServiceClient) ListMenu(ctx context.Context, in *ListMenuRequest, opts ...grpc.CallOption) (*ListMenuResponse, error) {
	return invoke[ListMenuRequest, ListMenuResponse](ctx, c.cc, ChatService_ListMenu_FullMethodName, in, opts)
}

func (c *ChatServiceClient) PostBook(ctx context.Context, in *PostBookRequest, opts ...grpc.CallOption) (*Book, error) {
	return invoke[PostBookRequest, Book](ctx, c.cc, ChatService_PostBook_FullMethodName, in, opts)
}

func (c *ChatServiceClient) FindBooks(ctx context.Context, in *FindBooksRequest, opts ...grpc.CallOption) (*FindBooksResponse, error) {
	return invoke[FindBooksRequest, FindBooksResponse](ctx, c.cc, ChatService_FindBooks_FullMethodName, in, opts)
}

func (c *ChatServiceClient) WatchConversations(ctx context.Context, in *WatchConversationsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ConversationsSnapshot], error) {
	return openStream[WatchConversationsRequest, ConversationsSnapshot](ctx, c.cc, &ChatService_ServiceDesc.Streams[0], ChatService_WatchConversations_FullMethodName, in, opts)
}

func (c *ChatServiceClient) WatchMessages(ctx context.Context, in *WatchMessagesRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[MessagesSnapshot], error) {
	return openStream[WatchMessagesRequest, MessagesSnapshot](ctx, c.cc, &ChatService_ServiceDesc.Streams[1], ChatService_WatchMessages_FullMethodName, in, opts)
}

func (c *ChatServiceClient) GetHistory(ctx context.Context, in *GetHistoryRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Message], error) {
	return openStream[GetHistoryRequest, Message](ctx, c.cc, &ChatService_ServiceDesc.Streams[2], ChatService_GetHistory_FullMethodName, in, opts)
}

func (c *ChatServiceClient) ListNotifications(ctx context.Context, in *ListNotificationsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Notification], error) {
	return openStream[ListNotificationsRequest, Notification](ctx, c.cc, &ChatService_ServiceDesc.Streams[3], ChatService_ListNotifications_FullMethodName, in, opts)
}
