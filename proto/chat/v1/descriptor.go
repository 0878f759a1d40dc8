// Package chatv1 is the chat.v1.ChatService contract described by
// chat.proto: message types, the gRPC service descriptor and a typed client.
package chatv1

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	_ "google.golang.org/protobuf/types/known/timestamppb"
)

// File is the chat/v1/chat.proto descriptor. It is registered in
// protoregistry.GlobalFiles, which is what server reflection serves.
var File protoreflect.FileDescriptor

func init() {
	fd, err := protodesc.NewFile(fileDescriptorProto(), protoregistry.GlobalFiles)
	if err != nil {
		panic(fmt.Sprintf("chatv1: build descriptor: %v", err))
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(fmt.Sprintf("chatv1: register descriptor: %v", err))
	}
	File = fd
}

// messageDescriptor returns the descriptor of the named message in File.
func messageDescriptor(name protoreflect.Name) protoreflect.MessageDescriptor {
	md := File.Messages().ByName(name)
	if md == nil {
		panic(fmt.Sprintf("chatv1: unknown message %s", name))
	}
	return md
}

const timestampType = ".google.protobuf.Timestamp"

type fieldType = descriptorpb.FieldDescriptorProto_Type

var (
	optional = descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum()
	repeated = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
)

func scalar(name string, num int32, typ fieldType) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		Number:   proto.Int32(num),
		Label:    optional,
		Type:     typ.Enum(),
		JsonName: proto.String(jsonName(name)),
	}
}

func str(name string, num int32) *descriptorpb.FieldDescriptorProto {
	return scalar(name, num, descriptorpb.FieldDescriptorProto_TYPE_STRING)
}

func strs(name string, num int32) *descriptorpb.FieldDescriptorProto {
	f := str(name, num)
	f.Label = repeated
	return f
}

func msg(name string, num int32, typeName string) *descriptorpb.FieldDescriptorProto {
	f := scalar(name, num, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE)
	if typeName[0] != '.' {
		typeName = ".chat.v1." + typeName
	}
	f.TypeName = proto.String(typeName)
	return f
}

func msgs(name string, num int32, typeName string) *descriptorpb.FieldDescriptorProto {
	f := msg(name, num, typeName)
	f.Label = repeated
	return f
}

func int32f(name string, num int32) *descriptorpb.FieldDescriptorProto {
	return scalar(name, num, descriptorpb.FieldDescriptorProto_TYPE_INT32)
}

func boolf(name string, num int32) *descriptorpb.FieldDescriptorProto {
	return scalar(name, num, descriptorpb.FieldDescriptorProto_TYPE_BOOL)
}

func double(name string, num int32) *descriptorpb.FieldDescriptorProto {
	return scalar(name, num, descriptorpb.FieldDescriptorProto_TYPE_DOUBLE)
}

// jsonName is protoc's lowerCamelCase of a snake_case field name.
func jsonName(name string) string {
	out := make([]byte, 0, len(name))
	upper := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_':
			upper = true
		case upper && 'a' <= c && c <= 'z':
			out = append(out, c-'a'+'A')
			upper = false
		default:
			out = append(out, c)
			upper = false
		}
	}
	return string(out)
}

func message(name string, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{Name: proto.String(name), Field: fields}
}

func method(name, in, out string, serverStreaming bool) *descriptorpb.MethodDescriptorProto {
	m := &descriptorpb.MethodDescriptorProto{
		Name:       proto.String(name),
		InputType:  proto.String(".chat.v1." + in),
		OutputType: proto.String(".chat.v1." + out),
	}
	if serverStreaming {
		m.ServerStreaming = proto.Bool(true)
	}
	return m
}

// fileDescriptorProto mirrors chat.proto; keep the two in step.
func fileDescriptorProto() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:       proto.String("chat/v1/chat.proto"),
		Package:    proto.String("chat.v1"),
		Dependency: []string{"google/protobuf/timestamp.proto"},
		Syntax:     proto.String("proto3"),
		Options: &descriptorpb.FileOptions{
			GoPackage: proto.String("github.com/PaulBabatuyi/campusChat-gRPC/proto/chat/v1;chatv1"),
		},
		MessageType: []*descriptorpb.DescriptorProto{
			message("RegisterRequest", str("email", 1), str("password", 2), str("display_name", 3)),
			message("RegisterResponse", str("token", 1), str("user_id", 2), msg("expires_at", 3, timestampType)),
			message("LoginRequest", str("email", 1), str("password", 2)),
			message("LoginResponse", str("token", 1), str("user_id", 2), msg("expires_at", 3, timestampType)),
			message("WatchConversationsRequest"),
			message("ConversationSummary",
				str("conversation_id", 1),
				strs("participant_ids", 2),
				strs("participant_names", 3),
				str("last_message", 4),
				msg("last_message_at", 5, timestampType),
			),
			message("ConversationsSnapshot", msgs("conversations", 1, "ConversationSummary")),
			message("Message",
				str("msg_id", 1),
				str("conversation_id", 2),
				str("sender_id", 3),
				str("content", 4),
				msg("sent_at", 5, timestampType),
			),
			message("WatchMessagesRequest", str("conversation_id", 1)),
			message("MessagesSnapshot", str("conversation_id", 1), msgs("messages", 2, "Message")),
			message("GetHistoryRequest", str("conversation_id", 1)),
			message("SendMessageRequest", str("conversation_id", 1), str("content", 2)),
			message("SendMessageResponse", msg("message", 1, "Message")),
			message("ResolveConversationRequest", str("user_id", 1)),
			message("ResolveConversationResponse", str("conversation_id", 1), boolf("created", 2)),
			message("ListNotificationsRequest"),
			message("Notification",
				str("conversation_id", 1),
				str("sender_name", 2),
				str("text", 3),
				msg("at", 4, timestampType),
			),
			message("GetProfileRequest", str("user_id", 1)),
			message("Profile",
				str("user_id", 1),
				str("display_name", 2),
				str("email", 3),
				str("photo_url", 4),
				int32f("follower_count", 5),
				int32f("following_count", 6),
				int32f("post_count", 7),
				boolf("followed_by_me", 8),
			),
			message("FollowRequest", str("user_id", 1)),
			message("FollowResponse"),
			message("SearchUsersRequest", str("prefix", 1), int32f("limit", 2)),
			message("UserSummary", str("user_id", 1), str("email", 2), str("display_name", 3)),
			message("SearchUsersResponse", msgs("users", 1, "UserSummary")),
			message("ListMenuRequest"),
			message("MenuItem",
				str("item_id", 1),
				str("name", 2),
				double("price", 3),
				str("status", 4),
				str("image_url", 5),
				boolf("available", 6),
			),
			message("ListMenuResponse", msgs("items", 1, "MenuItem")),
			message("PostBookRequest",
				str("title", 1),
				str("author", 2),
				str("genre", 3),
				str("condition", 4),
				double("price", 5),
				str("description", 6),
			),
			message("Book",
				str("book_id", 1),
				str("seller_id", 2),
				str("title", 3),
				str("author", 4),
				str("genre", 5),
				str("condition", 6),
				double("price", 7),
				str("description", 8),
				msg("posted_at", 9, timestampType),
			),
			message("FindBooksRequest",
				str("title", 1),
				str("author", 2),
				str("genre", 3),
				str("condition", 4),
				double("max_price", 5),
			),
			message("FindBooksResponse", msgs("books", 1, "Book")),
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("ChatService"),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("Register", "RegisterRequest", "RegisterResponse", false),
				method("Login", "LoginRequest", "LoginResponse", false),
				method("WatchConversations", "WatchConversationsRequest", "ConversationsSnapshot", true),
				method("WatchMessages", "WatchMessagesRequest", "MessagesSnapshot", true),
				method("GetHistory", "GetHistoryRequest", "Message", true),
				method("SendMessage", "SendMessageRequest", "SendMessageResponse", false),
				method("ResolveConversation", "ResolveConversationRequest", "ResolveConversationResponse", false),
				method("ListNotifications", "ListNotificationsRequest", "Notification", true),
				method("GetProfile", "GetProfileRequest", "Profile", false),
				method("Follow", "FollowRequest", "FollowResponse", false),
				method("Unfollow", "FollowRequest", "FollowResponse", false),
				method("SearchUsers", "SearchUsersRequest", "SearchUsersResponse", false),
				method("ListMenu", "ListMenuRequest", "ListMenuResponse", false),
				method("PostBook", "PostBookRequest", "Book", false),
				method("FindBooks", "FindBooksRequest", "FindBooksResponse", false),
			},
		}},
	}
}
