package main

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	interaction "MediaHub.com/cmd/api/handlers/interaction"
	relation "MediaHub.com/cmd/api/handlers/relation"
	system "MediaHub.com/cmd/api/handlers/system"
	user "MediaHub.com/cmd/api/handlers/user"
	video "MediaHub.com/cmd/api/handlers/video"
	"MediaHub.com/cmd/api/mw"
	"MediaHub.com/cmd/user/service"
)

func register(r *server.Hertz) {
	r.GET("/health", system.HealthCheck)

	v1 := r.Group("/api/v1")

	users := v1.Group("/users")
	{
		users.POST("/register", user.Register)
		users.POST("/login", mw.Login)
		users.GET("/c/:username", user.ChannelProfile)
		users.POST("/refresh-token", mw.AccessTokenJwtMiddleware.RefreshHandler)

		authed := users.Group("", mw.Auth())
		authed.POST("/logout", mw.AccessTokenJwtMiddleware.LogoutHandler)
		authed.GET("/current-user", user.CurrentUser)
		authed.PATCH("/update-account", user.UpdateAccount)
		authed.POST("/change-password", user.ChangePassword)
		authed.PATCH("/avatar", user.UpdateImage(service.ImageAvatar, "avatar"))
		authed.PATCH("/cover-image", user.UpdateImage(service.ImageCover, "coverImage"))
		authed.GET("/history", user.WatchHistory)
	}

	videos := v1.Group("/videos")
	{
		videos.GET("", video.ListVideos)
		videos.GET("/:videoId", video.GetVideo)

		authed := videos.Group("", mw.Auth())
		authed.POST("", video.PublishVideo)
		authed.PATCH("/:videoId", video.UpdateVideo)
		authed.DELETE("/:videoId", video.DeleteVideo)
		authed.PATCH("/toggle/publish/:videoId", video.TogglePublish)
	}

	comments := v1.Group("/comments")
	{
		comments.GET("/:videoId", interaction.ListComments)

		authed := comments.Group("", mw.Auth())
		authed.POST("/:videoId", mw.Limit(mw.ResourceComment), interaction.CreateComment)
		authed.PATCH("/c/:commentId", interaction.UpdateComment)
		authed.DELETE("/c/:commentId", interaction.DeleteComment)
	}

	likes := v1.Group("/likes", mw.Auth())
	{
		likes.POST("/toggle/v/:videoId", mw.Limit(mw.ResourceLike), interaction.ToggleVideoLike)
		likes.POST("/toggle/c/:commentId", mw.Limit(mw.ResourceLike), interaction.ToggleCommentLike)
		likes.POST("/toggle/t/:tweetId", mw.Limit(mw.ResourceLike), interaction.ToggleTweetLike)
		likes.GET("/videos", interaction.LikedVideos)
	}

	tweets := v1.Group("/tweets")
	{
		tweets.GET("/user/:userId", interaction.UserTweets)

		authed := tweets.Group("", mw.Auth())
		authed.POST("", interaction.CreateTweet)
		authed.PATCH("/:tweetId", interaction.UpdateTweet)
		authed.DELETE("/:tweetId", interaction.DeleteTweet)
	}

	subscriptions := v1.Group("/subscriptions")
	{
		subscriptions.GET("/c/:channelId", relation.SubscriberList)
		subscriptions.GET("/u/:subscriberId", relation.SubscribedChannels)
		subscriptions.POST("/c/:channelId", mw.Auth(), mw.Limit(mw.ResourceSubscribe), relation.ToggleSubscription)
	}

	playlists := v1.Group("/playlist")
	{
		playlists.GET("/:playlistId", video.GetPlaylist)
		playlists.GET("/user/:userId", video.UserPlaylists)

		authed := playlists.Group("", mw.Auth())
		authed.POST("", video.CreatePlaylist)
		authed.PATCH("/:playlistId", video.UpdatePlaylist)
		authed.DELETE("/:playlistId", video.DeletePlaylist)
		authed.PATCH("/add/:videoId/:playlistId", video.AddVideoToPlaylist)
		authed.PATCH("/remove/:videoId/:playlistId", video.RemoveVideoFromPlaylist)
	}

	dashboard := v1.Group("/dashboard")
	{
		dashboard.GET("/stats", mw.Auth(), video.ChannelStats)
		dashboard.GET("/videos", mw.Auth(), video.ChannelVideos)
		dashboard.GET("/channels/:channelId/videos", video.ChannelVideos)
	}
}
